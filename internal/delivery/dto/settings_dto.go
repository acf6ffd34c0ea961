package dto

import "time"

// Request DTOs

// UpdateSettingRequest has no validate tag on Value: false and 0 are legal values.
type UpdateSettingRequest struct {
	Value interface{} `json:"value"`
}

// UpdateSettingsRequest carries dotted keys, e.g. "security.maxLoginAttempts".
type UpdateSettingsRequest struct {
	Settings map[string]interface{} `json:"settings" validate:"required,min=1"`
}

// Response DTOs

type SettingResponse struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

type SystemInfoResponse struct {
	GoVersion          string    `json:"go_version"`
	OS                 string    `json:"os"`
	Arch               string    `json:"arch"`
	NumCPU             int       `json:"num_cpu"`
	NumGoroutine       int       `json:"num_goroutine"`
	ServerTime         time.Time `json:"server_time"`
	Uptime             string    `json:"uptime"`
	AllocatedMemory    string    `json:"allocated_memory"`
	SystemMemory       string    `json:"system_memory"`
	HeapInUse          string    `json:"heap_in_use"`
	MemoryUsagePercent float64   `json:"memory_usage_percent"`
	ApplicationName    string    `json:"application_name"`
	Version            string    `json:"version"`
	Environment        string    `json:"environment"`
}
