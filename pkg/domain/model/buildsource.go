package model

// EventAction represents a repository event kind that can trigger a
// webhook build.
type EventAction string

const (
	EventPush               EventAction = "PUSH"
	EventPullRequestCreated EventAction = "PULL_REQUEST_CREATED"
	EventPullRequestUpdated EventAction = "PULL_REQUEST_UPDATED"
)

// String returns the wire representation of the event action.
func (a EventAction) String() string {
	return string(a)
}

// BranchFilter selects which branch field of an event a filter group
// constrains.
type BranchFilter string

const (
	// BranchFilterNone applies no branch constraint.
	BranchFilterNone BranchFilter = "NONE"
	// BranchFilterHeadRef constrains the branch being pushed to.
	BranchFilterHeadRef BranchFilter = "HEAD_REF"
	// BranchFilterBaseRef constrains the base branch a pull request
	// targets. A pull request's base is the branch the change merges
	// into, not the branch carrying the change.
	BranchFilterBaseRef BranchFilter = "BASE_REF"
)

// FilterGroup is one webhook trigger rule: the event must be one of
// Events and, unless BranchFilter is NONE, the constrained branch field
// must equal Branch exactly. A build's filter groups are OR-ed: any
// matching group triggers.
type FilterGroup struct {
	Events       []EventAction `json:"events" yaml:"events"`
	BranchFilter BranchFilter  `json:"branch_filter" yaml:"branch_filter"`
	Branch       string        `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// Matches reports whether the group triggers for the given event action
// and branch fields. branch is the pushed/head branch, baseBranch the
// pull-request base branch (empty for pushes).
func (g FilterGroup) Matches(action EventAction, branch, baseBranch string) bool {
	found := false
	for _, ev := range g.Events {
		if ev == action {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	switch g.BranchFilter {
	case BranchFilterHeadRef:
		return branch != "" && branch == g.Branch
	case BranchFilterBaseRef:
		return baseBranch != "" && baseBranch == g.Branch
	default:
		return true
	}
}

// BuildSourceProvider identifies the backend a build job fetches source
// from.
type BuildSourceProvider string

const (
	BuildSourceManaged   BuildSourceProvider = "MANAGED"
	BuildSourceHostedGit BuildSourceProvider = "HOSTED_GIT"
)

// BuildSource is the descriptor handed to a build-job definition: where
// to fetch source from and how the job reacts to repository events. The
// token is carried opaquely for the build backend and never inspected
// here.
type BuildSource struct {
	Provider          BuildSourceProvider `json:"provider" yaml:"provider"`
	Identifier        string              `json:"identifier" yaml:"identifier"`
	CloneURLHTTP      string              `json:"clone_url_http" yaml:"clone_url_http"`
	Token             SecretRef           `json:"token,omitempty" yaml:"token,omitempty" masq:"secret"`
	Webhook           bool                `json:"webhook,omitempty" yaml:"webhook,omitempty"`
	ReportBuildStatus bool                `json:"report_build_status,omitempty" yaml:"report_build_status,omitempty"`
	FilterGroups      []FilterGroup       `json:"filter_groups,omitempty" yaml:"filter_groups,omitempty"`
}
