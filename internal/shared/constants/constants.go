package constants

// Environments
const (
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"
)

// Pagination defaults
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Table names
const (
	TableMembers          = "members"
	TablePackages         = "packages"
	TableCoupons          = "coupons"
	TableSubscriptions    = "subscriptions"
	TableInvoices         = "invoices"
	TablePayments         = "payments"
	TableVisits           = "visits"
	TableCampaigns        = "campaigns"
	TableCampaignMessages = "campaign_messages"
	TableSequences        = "sequences"
)

// Named counters backed by the sequences table
const (
	SequenceInvoice = "invoice"
	SequenceMember  = "member"
)

// Number formats for human-readable references
const (
	InvoiceNumberPrefix = "INV-"
	MemberNumberPrefix  = "MBR-"
)

// DefaultCurrency is the only currency the system bills in.
const DefaultCurrency = "SAR"
