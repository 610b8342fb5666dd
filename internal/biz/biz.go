package biz

import "github.com/google/wire"

// ProviderSet is biz providers.
var ProviderSet = wire.NewSet(
	NewLinkResolver,
	NewRewardAttributor,
	NewClickLedger,
	NewClickQueue,
	NewCampaignUsecase,
	wire.Bind(new(ClickRecorder), new(*ClickLedger)),
)
