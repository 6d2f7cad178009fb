package model

// ManagedRepoHandle identifies a repository hosted on the managed
// internal repository service. All fields are supplied externally: the
// managed backend owns URL formation, so clone URLs arrive here ready
// to use and are never derived by this core.
type ManagedRepoHandle struct {
	Name         string // Human-readable repository name, used as its label
	ID           string // Opaque backend identity (optional)
	CloneURLHTTP string // HTTPS clone URL as issued by the backend
	CloneURLSSH  string // SSH clone URL as issued by the backend
}
