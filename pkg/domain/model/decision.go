package model

// TriggerDecision records whether one synthesized definition would
// start a build in response to a repository event.
type TriggerDecision struct {
	Pipeline   string `json:"pipeline"`
	Repository string `json:"repository"`
	Triggered  bool   `json:"triggered"`
}

// HealthStatus is the liveness report served by the HTTP controller.
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
