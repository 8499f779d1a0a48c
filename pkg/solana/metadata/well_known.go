package metadata

// Well-known attribute keys. Nothing in the program treats these
// specially; they exist so ecosystems agree on spelling.
const (
	AttributeKeyTwitter    = "twitter"
	AttributeKeyTelegram   = "telegram"
	AttributeKeyWebsite    = "website"
	AttributeKeyDiscord    = "discord"
	AttributeKeyCoingecko  = "coingecko"
	AttributeKeyWhitepaper = "whitepaper"
	AttributeKeyAudit      = "audit"
	AttributeKeyCategory   = "category"
	AttributeKeyTags       = "tags"
)
