package campaign

import "errors"

var (
	ErrCampaignNotDraft   = errors.New("campaign is not a draft")
	ErrCampaignNotRunning = errors.New("campaign is not running")
	ErrCampaignFinished   = errors.New("campaign is already finished")
	ErrNoRecipients       = errors.New("campaign audience has no recipients")
)
