// models/preferences.go
package models

// Preferences is pure presentation state. No business invariants apply here.
type Preferences struct {
	Theme             string          `json:"theme"`
	SidebarOpen       bool            `json:"sidebar_open"`
	SidebarWidth      int             `json:"sidebar_width"`
	MobileSidebarOpen bool            `json:"mobile_sidebar_open"`
	CurrentView       string          `json:"current_view"`
	Breadcrumbs       []string        `json:"breadcrumbs"`
	Modals            map[string]bool `json:"modals"`
}
