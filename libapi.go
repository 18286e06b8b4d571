package tagflow

import (
	runtimepkg "github.com/drblury/tagflow/internal/runtime"
	configpkg "github.com/drblury/tagflow/internal/runtime/config"
	errspkg "github.com/drblury/tagflow/internal/runtime/errors"
	eventpkg "github.com/drblury/tagflow/internal/runtime/event"
	idspkg "github.com/drblury/tagflow/internal/runtime/ids"
	jsoncodec "github.com/drblury/tagflow/internal/runtime/jsoncodec"
	loggingpkg "github.com/drblury/tagflow/internal/runtime/logging"
	validatepkg "github.com/drblury/tagflow/internal/runtime/validate"
	sinkpkg "github.com/drblury/tagflow/sink"
)

type (
	Config       = configpkg.Config
	Tracker      = runtimepkg.Tracker
	Dependencies = runtimepkg.Dependencies
	Reporter     = runtimepkg.Reporter
	Command      = runtimepkg.Command
	State        = runtimepkg.State
	TrackOption  = runtimepkg.TrackOption
	PageInfo     = runtimepkg.PageInfo
	EnvInfo      = runtimepkg.EnvInfo
	Metrics      = runtimepkg.Metrics

	// Event model
	Event    = eventpkg.Event
	Category = eventpkg.Category
	Item     = eventpkg.Item

	// Tracking inputs
	PageView      = runtimepkg.PageView
	Search        = runtimepkg.Search
	Login         = runtimepkg.Login
	SignUp        = runtimepkg.SignUp
	Share         = runtimepkg.Share
	SelectContent = runtimepkg.SelectContent
	Engagement    = runtimepkg.Engagement
	Video         = runtimepkg.Video
	VideoAction   = runtimepkg.VideoAction
	Exception     = runtimepkg.Exception
	Timing        = runtimepkg.Timing

	// E-commerce inputs
	ViewItem        = runtimepkg.ViewItem
	ItemList        = runtimepkg.ItemList
	Cart            = runtimepkg.Cart
	CartAction      = runtimepkg.CartAction
	Wishlist        = runtimepkg.Wishlist
	WishlistAction  = runtimepkg.WishlistAction
	BeginCheckout   = runtimepkg.BeginCheckout
	ShippingInfo    = runtimepkg.ShippingInfo
	PaymentInfo     = runtimepkg.PaymentInfo
	Purchase        = runtimepkg.Purchase
	Refund          = runtimepkg.Refund
	Promotion       = runtimepkg.Promotion
	PromotionAction = runtimepkg.PromotionAction

	LogFields     = loggingpkg.LogFields
	ServiceLogger = loggingpkg.ServiceLogger

	ConfigError            = errspkg.ConfigError
	InitError              = errspkg.InitError
	InvalidArgumentError   = errspkg.InvalidArgumentError
	UnsupportedActionError = errspkg.UnsupportedActionError

	// Modular sink types
	Sink             = sinkpkg.Sink
	SinkBuilder      = sinkpkg.Builder
	SinkConfig       = sinkpkg.Config
	SinkRegistry     = sinkpkg.Registry
	SinkCapabilities = sinkpkg.Capabilities
)

var (
	NewTracker     = runtimepkg.NewTracker
	TryNewTracker  = runtimepkg.TryNewTracker
	ValidateConfig = configpkg.ValidateConfig

	// Reporter construction
	NewSinkReporter = runtimepkg.NewSinkReporter

	// Per-call options
	WithParams        = runtimepkg.WithParams
	WithOnError       = runtimepkg.WithOnError
	WithDebug         = runtimepkg.WithDebug
	WithTransportHint = runtimepkg.WithTransportHint
	WithImmediate     = runtimepkg.WithImmediate

	// Item normalization helpers
	RoundPrice     = eventpkg.RoundPrice
	NormalizeItems = eventpkg.NormalizeItems

	// Validation predicates
	ValidMeasurementID = validatepkg.MeasurementID
	ValidCurrencyCode  = validatepkg.CurrencyCode
	ValidateEventName  = validatepkg.EventName

	Marshal       = jsoncodec.Marshal
	MarshalIndent = jsoncodec.MarshalIndent
	Unmarshal     = jsoncodec.Unmarshal
	Encode        = jsoncodec.Encode
	Decode        = jsoncodec.Decode

	ErrTrackerRequired       = errspkg.ErrTrackerRequired
	ErrConfigRequired        = errspkg.ErrConfigRequired
	ErrLoggerRequired        = errspkg.ErrLoggerRequired
	ErrMeasurementIDRequired = errspkg.ErrMeasurementIDRequired
	ErrReporterRequired      = errspkg.ErrReporterRequired
	ErrPublisherRequired     = errspkg.ErrPublisherRequired
	ErrItemsRequired         = errspkg.ErrItemsRequired
	ErrValueRequired         = errspkg.ErrValueRequired
	ErrTransactionIDRequired = errspkg.ErrTransactionIDRequired
	ErrCreativeNameRequired  = errspkg.ErrCreativeNameRequired
	ErrEventNameRequired     = errspkg.ErrEventNameRequired

	NewSlogServiceLogger      = loggingpkg.NewSlogServiceLogger
	NewWatermillServiceLogger = loggingpkg.NewWatermillServiceLogger
	NewWatermillAdapter       = loggingpkg.NewWatermillAdapter

	// NewEventID generates a unique event ID using ULID.
	NewEventID = idspkg.NewEventID

	// Modular sink registry.
	// Use RegisterSink and BuildSink to work with the modular sink packages.
	// Import individual sinks via: _ "github.com/drblury/tagflow/sink/kafka"
	DefaultSinkRegistry = sinkpkg.DefaultRegistry
	RegisterSink        = sinkpkg.Register
	BuildSink           = sinkpkg.Build
	SinkCapabilitiesFor = sinkpkg.GetCapabilities
)

// Lifecycle states of a Tracker.
const (
	StateNotInitialized = runtimepkg.StateNotInitialized
	StateInitializing   = runtimepkg.StateInitializing
	StateInitialized    = runtimepkg.StateInitialized
	StateFailed         = runtimepkg.StateFailed
)

// Reporting commands sent over the control channel.
const (
	CommandJS      = runtimepkg.CommandJS
	CommandConfig  = runtimepkg.CommandConfig
	CommandConsent = runtimepkg.CommandConsent
	CommandEvent   = runtimepkg.CommandEvent

	TopicEvents  = runtimepkg.TopicEvents
	TopicControl = runtimepkg.TopicControl
)

// Event categories.
const (
	CategoryEngagement  = eventpkg.CategoryEngagement
	CategoryEcommerce   = eventpkg.CategoryEcommerce
	CategoryNavigation  = eventpkg.CategoryNavigation
	CategoryInteraction = eventpkg.CategoryInteraction
	CategoryConversion  = eventpkg.CategoryConversion
	CategoryError       = eventpkg.CategoryError
	CategoryPerformance = eventpkg.CategoryPerformance
	CategoryCustom      = eventpkg.CategoryCustom
)

// Action discriminators.
const (
	CartActionAdd    = runtimepkg.CartActionAdd
	CartActionRemove = runtimepkg.CartActionRemove
	CartActionView   = runtimepkg.CartActionView
	CartActionUpdate = runtimepkg.CartActionUpdate

	WishlistActionAdd    = runtimepkg.WishlistActionAdd
	WishlistActionRemove = runtimepkg.WishlistActionRemove
	WishlistActionView   = runtimepkg.WishlistActionView
	WishlistActionUpdate = runtimepkg.WishlistActionUpdate

	PromotionActionView   = runtimepkg.PromotionActionView
	PromotionActionSelect = runtimepkg.PromotionActionSelect

	VideoActionStart    = runtimepkg.VideoActionStart
	VideoActionProgress = runtimepkg.VideoActionProgress
	VideoActionComplete = runtimepkg.VideoActionComplete
)
