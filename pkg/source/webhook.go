package source

import (
	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
)

// WebhookFilters derives the trigger filter groups for a hosted-Git
// build job. Groups are alternatives: an event fires the build when any
// single group matches it completely.
//
// With a branch, pushes match the pushed branch itself while pull
// requests match the branch the change targets (the base), because the
// head of a pull request is the contributor's working branch and
// constraining on it would never match. Without a branch a single
// unconstrained group accepts all supported events.
func WebhookFilters(branch string) []model.FilterGroup {
	if branch == "" {
		return []model.FilterGroup{
			{
				Events: []model.EventAction{
					model.EventPush,
					model.EventPullRequestCreated,
					model.EventPullRequestUpdated,
				},
				BranchFilter: model.BranchFilterNone,
			},
		}
	}

	return []model.FilterGroup{
		{
			Events:       []model.EventAction{model.EventPush},
			BranchFilter: model.BranchFilterHeadRef,
			Branch:       branch,
		},
		{
			Events: []model.EventAction{
				model.EventPullRequestCreated,
				model.EventPullRequestUpdated,
			},
			BranchFilter: model.BranchFilterBaseRef,
			Branch:       branch,
		},
	}
}
