package trigger

import (
	"strings"

	"github.com/google/go-github/v75/github"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
)

// Event is the normalized form of a repository webhook delivery, reduced
// to the fields filter groups constrain. Normalization is pure: no
// handler state, no I/O.
type Event struct {
	Action     model.EventAction
	Branch     string // pushed or pull-request head branch
	BaseBranch string // pull-request base branch, empty for pushes
}

const branchRefPrefix = "refs/heads/"

// FromPushEvent normalizes a push delivery. Pushes to anything but a
// branch ref (tags, notes) do not trigger builds and return ok=false.
func FromPushEvent(ev *github.PushEvent) (Event, bool) {
	ref := ev.GetRef()
	if !strings.HasPrefix(ref, branchRefPrefix) {
		return Event{}, false
	}

	return Event{
		Action: model.EventPush,
		Branch: strings.TrimPrefix(ref, branchRefPrefix),
	}, true
}

// FromPullRequestEvent normalizes a pull-request delivery. An opened
// pull request counts as created; pushes to and edits of an existing one
// count as updated. Other actions (closed, labeled, ...) do not trigger
// builds and return ok=false.
func FromPullRequestEvent(ev *github.PullRequestEvent) (Event, bool) {
	var action model.EventAction
	switch ev.GetAction() {
	case "opened":
		action = model.EventPullRequestCreated
	case "synchronize", "edited", "reopened":
		action = model.EventPullRequestUpdated
	default:
		return Event{}, false
	}

	pr := ev.GetPullRequest()

	return Event{
		Action:     action,
		Branch:     pr.GetHead().GetRef(),
		BaseBranch: pr.GetBase().GetRef(),
	}, true
}

// Matches reports whether any group matches the event. An empty group
// list never matches.
func Matches(groups []model.FilterGroup, ev Event) bool {
	for _, g := range groups {
		if g.Matches(ev.Action, ev.Branch, ev.BaseBranch) {
			return true
		}
	}

	return false
}

// ShouldTrigger reports whether the build descriptor fires for the
// event. Non-webhook descriptors never fire regardless of filters.
func ShouldTrigger(bs *model.BuildSource, ev Event) bool {
	if bs == nil || !bs.Webhook {
		return false
	}

	return Matches(bs.FilterGroups, ev)
}
