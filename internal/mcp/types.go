package mcp

// WindowItem is the wire form of one window snapshot.
type WindowItem struct {
	Handle  uint64 `json:"handle"`
	Title   string `json:"title"`
	Class   string `json:"class"`
	PID     int    `json:"pid"`
	Process string `json:"process"`
}

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Fresh bool `json:"fresh,omitempty" jsonschema:"When true, bypass the snapshot cache and re-enumerate"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Windows []WindowItem `json:"windows"`
}

// FindWindowsInput is the input for the find_windows tool.
type FindWindowsInput struct {
	Title   string `json:"title,omitempty" jsonschema:"Title pattern to search for"`
	Mode    string `json:"mode,omitempty" jsonschema:"Title match mode: exact, substring (default) or regexp"`
	Process string `json:"process,omitempty" jsonschema:"Process name or PID to search for instead of a title"`
}

// FindWindowsOutput is the output for the find_windows tool.
type FindWindowsOutput struct {
	Windows []WindowItem `json:"windows"`
}

// ActivateWindowInput is the input for the activate_window tool.
type ActivateWindowInput struct {
	Handle uint64 `json:"handle" jsonschema:"required,Window handle from list_windows or find_windows"`
}

// ActivateWindowOutput is the output for the activate_window tool.
type ActivateWindowOutput struct {
	Activated bool `json:"activated"`
}

// SwitchWindowsInput is the input for the switch_windows tool.
type SwitchWindowsInput struct {
	Handles []uint64 `json:"handles" jsonschema:"required,Window handles to activate, in order"`
	DelayMS *int     `json:"delay_ms,omitempty" jsonschema:"Pause between windows in milliseconds; 0 disables the pause, omit for the configured default"`
}

// SwitchOutcome is one per-window result of switch_windows.
type SwitchOutcome struct {
	Handle    uint64 `json:"handle"`
	Activated bool   `json:"activated"`
	Strategy  string `json:"strategy,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// SwitchWindowsOutput is the output for the switch_windows tool.
type SwitchWindowsOutput struct {
	Outcomes  []SwitchOutcome `json:"outcomes"`
	Activated int             `json:"activated"`
}

// ActiveWindowsInput is the input for the active_windows tool.
type ActiveWindowsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of windows to return (default: configured value)"`
}

// ActiveWindowsOutput is the output for the active_windows tool.
type ActiveWindowsOutput struct {
	Foreground uint64       `json:"foreground,omitempty"`
	Windows    []WindowItem `json:"windows"`
}

// WindowSummaryInput is the input for the window_summary tool.
type WindowSummaryInput struct{}

// WindowSummaryOutput is the output for the window_summary tool.
type WindowSummaryOutput struct {
	Total     int            `json:"total"`
	ByProcess map[string]int `json:"by_process"`
}
