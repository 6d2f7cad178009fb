package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/MrArnoldPalmer/delivlib/pkg/domain/model"
)

func TestFilterGroupMatches(t *testing.T) {
	pushGroup := model.FilterGroup{
		Events:       []model.EventAction{model.EventPush},
		BranchFilter: model.BranchFilterHeadRef,
		Branch:       "main",
	}
	prGroup := model.FilterGroup{
		Events: []model.EventAction{
			model.EventPullRequestCreated,
			model.EventPullRequestUpdated,
		},
		BranchFilter: model.BranchFilterBaseRef,
		Branch:       "main",
	}
	anyGroup := model.FilterGroup{
		Events: []model.EventAction{
			model.EventPush,
			model.EventPullRequestCreated,
			model.EventPullRequestUpdated,
		},
		BranchFilter: model.BranchFilterNone,
	}

	tests := []struct {
		name   string
		group  model.FilterGroup
		action model.EventAction
		branch string
		base   string
		want   bool
	}{
		{
			name:   "push to tracked branch",
			group:  pushGroup,
			action: model.EventPush,
			branch: "main",
			want:   true,
		},
		{
			name:   "push to another branch",
			group:  pushGroup,
			action: model.EventPush,
			branch: "feature/x",
			want:   false,
		},
		{
			name:   "pull request is not a push",
			group:  pushGroup,
			action: model.EventPullRequestCreated,
			branch: "feature/x",
			base:   "main",
			want:   false,
		},
		{
			name:   "pull request targeting tracked branch",
			group:  prGroup,
			action: model.EventPullRequestCreated,
			branch: "feature/x",
			base:   "main",
			want:   true,
		},
		{
			name:   "updated pull request targeting tracked branch",
			group:  prGroup,
			action: model.EventPullRequestUpdated,
			branch: "feature/x",
			base:   "main",
			want:   true,
		},
		{
			name:   "pull request from tracked branch into another",
			group:  prGroup,
			action: model.EventPullRequestUpdated,
			branch: "main",
			base:   "develop",
			want:   false,
		},
		{
			name: "base filter never matches a push",
			group: model.FilterGroup{
				Events:       []model.EventAction{model.EventPush},
				BranchFilter: model.BranchFilterBaseRef,
				Branch:       "main",
			},
			action: model.EventPush,
			branch: "main",
			want:   false,
		},
		{
			name:   "unconstrained group accepts any branch",
			group:  anyGroup,
			action: model.EventPush,
			branch: "whatever",
			want:   true,
		},
		{
			name: "unconstrained group still gates on event",
			group: model.FilterGroup{
				Events:       []model.EventAction{model.EventPush},
				BranchFilter: model.BranchFilterNone,
			},
			action: model.EventPullRequestCreated,
			branch: "feature/x",
			base:   "main",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, tt.group.Matches(tt.action, tt.branch, tt.base), tt.want)
		})
	}
}

func TestEventActionString(t *testing.T) {
	gt.Equal(t, model.EventPush.String(), "PUSH")
	gt.Equal(t, model.EventPullRequestCreated.String(), "PULL_REQUEST_CREATED")
	gt.Equal(t, model.EventPullRequestUpdated.String(), "PULL_REQUEST_UPDATED")
}
