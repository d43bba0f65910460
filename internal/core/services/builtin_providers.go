package services

import "github.com/pulseboard/pulseboard-cli/internal/core/domain"

// builtinDescriptors returns the descriptors for the platforms the dashboard
// ships with. Each one parameterises the same connection state machine; all
// provider variation is declarative.
func builtinDescriptors() []domain.ProviderDescriptor {
	return []domain.ProviderDescriptor{
		{
			ID:                  domain.ProviderGoogleAnalytics,
			Name:                "Google Analytics",
			ResourceNoun:        "property",
			AuthURLPath:         "/api/connect/google-analytics/auth-url",
			ResourceListPath:    "/api/connect/google-analytics/properties",
			CommitPath:          "/api/connect/google-analytics/commit",
			ExchangePath:        "/api/connect/google-analytics/exchange",
			SuccessMessageType:  "GOOGLE_ANALYTICS_OAUTH_SUCCESS",
			ErrorMessageType:    "GOOGLE_ANALYTICS_OAUTH_ERROR",
			ProjectBindingField: "ga4PropertyId",
		},
		{
			ID:                  domain.ProviderSearchConsole,
			Name:                "Search Console",
			ResourceNoun:        "site",
			AuthURLPath:         "/api/connect/search-console/auth-url",
			ResourceListPath:    "/api/connect/search-console/sites",
			CommitPath:          "/api/connect/search-console/commit",
			ExchangePath:        "/api/connect/search-console/exchange",
			SuccessMessageType:  "SEARCH_CONSOLE_OAUTH_SUCCESS",
			ErrorMessageType:    "SEARCH_CONSOLE_OAUTH_ERROR",
			ProjectBindingField: "gscSiteUrl",
		},
		{
			ID:                  domain.ProviderGoogleAds,
			Name:                "Google Ads",
			ResourceNoun:        "ad account",
			AuthURLPath:         "/api/connect/google-ads/auth-url",
			ResourceListPath:    "/api/connect/google-ads/accounts",
			CommitPath:          "/api/connect/google-ads/commit",
			ExchangePath:        "/api/connect/google-ads/exchange",
			SuccessMessageType:  "GOOGLE_ADS_OAUTH_SUCCESS",
			ErrorMessageType:    "GOOGLE_ADS_OAUTH_ERROR",
			ProjectBindingField: "adsCustomerId",
			// Customer ids are exactly ten digits, no dashes.
			ResourceIDPattern: `^\d{10}$`,
		},
		{
			ID:                  domain.ProviderMetaAds,
			Name:                "Meta Ads",
			ResourceNoun:        "ad account",
			AuthURLPath:         "/api/connect/meta-ads/auth-url",
			ResourceListPath:    "/api/connect/meta-ads/accounts",
			CommitPath:          "/api/connect/meta-ads/commit",
			ExchangePath:        "/api/connect/meta-ads/exchange",
			SuccessMessageType:  "META_ADS_OAUTH_SUCCESS",
			ErrorMessageType:    "META_ADS_OAUTH_ERROR",
			ProjectBindingField: "metaAdAccountId",
		},
		{
			ID:                  domain.ProviderFacebookPages,
			Name:                "Facebook Pages",
			ResourceNoun:        "page",
			AuthURLPath:         "/api/connect/facebook-pages/auth-url",
			ResourceListPath:    "/api/connect/facebook-pages/pages",
			CommitPath:          "/api/connect/facebook-pages/commit",
			ExchangePath:        "/api/connect/facebook-pages/exchange",
			SuccessMessageType:  "FACEBOOK_PAGES_OAUTH_SUCCESS",
			ErrorMessageType:    "FACEBOOK_PAGES_OAUTH_ERROR",
			ProjectBindingField: "facebookPageId",
		},
		{
			ID:                  domain.ProviderInstagram,
			Name:                "Instagram",
			ResourceNoun:        "business account",
			AuthURLPath:         "/api/connect/instagram/auth-url",
			ResourceListPath:    "/api/connect/instagram/accounts",
			CommitPath:          "/api/connect/instagram/commit",
			ExchangePath:        "/api/connect/instagram/exchange",
			SuccessMessageType:  "INSTAGRAM_OAUTH_SUCCESS",
			ErrorMessageType:    "INSTAGRAM_OAUTH_ERROR",
			ProjectBindingField: "instagramBusinessId",
		},
		{
			ID:                  domain.ProviderLinkedIn,
			Name:                "LinkedIn",
			ResourceNoun:        "organisation",
			AuthURLPath:         "/api/connect/linkedin/auth-url",
			ResourceListPath:    "/api/connect/linkedin/organisations",
			CommitPath:          "/api/connect/linkedin/commit",
			ExchangePath:        "/api/connect/linkedin/exchange",
			SuccessMessageType:  "LINKEDIN_OAUTH_SUCCESS",
			ErrorMessageType:    "LINKEDIN_OAUTH_ERROR",
			ProjectBindingField: "linkedinOrgId",
		},
		{
			ID:                  domain.ProviderTikTok,
			Name:                "TikTok",
			ResourceNoun:        "advertiser",
			AuthURLPath:         "/api/connect/tiktok/auth-url",
			ResourceListPath:    "/api/connect/tiktok/advertisers",
			CommitPath:          "/api/connect/tiktok/commit",
			ExchangePath:        "/api/connect/tiktok/exchange",
			SuccessMessageType:  "TIKTOK_OAUTH_SUCCESS",
			ErrorMessageType:    "TIKTOK_OAUTH_ERROR",
			ProjectBindingField: "tiktokAdvertiserId",
		},
		{
			ID:                  domain.ProviderYouTube,
			Name:                "YouTube",
			ResourceNoun:        "channel",
			AuthURLPath:         "/api/connect/youtube/auth-url",
			ResourceListPath:    "/api/connect/youtube/channels",
			CommitPath:          "/api/connect/youtube/commit",
			ExchangePath:        "/api/connect/youtube/exchange",
			SuccessMessageType:  "YOUTUBE_OAUTH_SUCCESS",
			ErrorMessageType:    "YOUTUBE_OAUTH_ERROR",
			ProjectBindingField: "youtubeChannelId",
		},
		{
			ID:                  domain.ProviderMailchimp,
			Name:                "Mailchimp",
			ResourceNoun:        "audience",
			AuthURLPath:         "/api/connect/mailchimp/auth-url",
			ResourceListPath:    "/api/connect/mailchimp/audiences",
			CommitPath:          "/api/connect/mailchimp/commit",
			ExchangePath:        "/api/connect/mailchimp/exchange",
			SuccessMessageType:  "MAILCHIMP_OAUTH_SUCCESS",
			ErrorMessageType:    "MAILCHIMP_OAUTH_ERROR",
			ProjectBindingField: "mailchimpAudienceId",
		},
		{
			ID:                  domain.ProviderDropbox,
			Name:                "Dropbox",
			ResourceNoun:        "folder",
			AuthURLPath:         "/api/connect/dropbox/auth-url",
			ResourceListPath:    "/api/connect/dropbox/folders",
			CommitPath:          "/api/connect/dropbox/commit",
			ExchangePath:        "/api/connect/dropbox/exchange",
			SuccessMessageType:  "DROPBOX_OAUTH_SUCCESS",
			ErrorMessageType:    "DROPBOX_OAUTH_ERROR",
			ProjectBindingField: "dropboxFolderId",
		},
	}
}
