package binder

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"form-binder/node"
	"form-binder/primitive"
	"form-binder/record"
)

// DefaultPrefix is the root scope of a binder.
const DefaultPrefix = "data"

// ProcessorFunc transforms an object value before it is written to the
// extracted record.
type ProcessorFunc func(value any) any

// RendererFunc turns an object value into display text.
type RendererFunc func(value any) string

// ConditionFunc decides the visibility of n from the data of its scope. It
// sets n.Hidden itself.
type ConditionFunc func(n *node.Node, data any)

// PrefillFunc fills the element of a freshly added collection instance.
type PrefillFunc func(element record.Record, instance *node.Node)

// BeforeInsertFunc may rewrite a record inserted into a collection, or veto
// the insert by returning nil.
type BeforeInsertFunc func(rec any) any

// Validator decides whether the live state of a field is acceptable.
type Validator interface {
	Validate(n *node.Node) bool
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(n *node.Node) bool

func (f ValidatorFunc) Validate(n *node.Node) bool { return f(n) }

// Listener observes collection instances coming and going, and the field
// that receives focus after a failed extract.
type Listener interface {
	AddCollection(collection, instance *node.Node, element any)
	PostAddCollection(collection, instance *node.Node, element any)
	DeleteCollection(collection, instance *node.Node, element any)
	Focus(n *node.Node)
}

// NopListener ignores every event. Embed it to implement a subset.
type NopListener struct{}

func (NopListener) AddCollection(_, _ *node.Node, _ any)     {}
func (NopListener) PostAddCollection(_, _ *node.Node, _ any) {}
func (NopListener) DeleteCollection(_, _ *node.Node, _ any)  {}
func (NopListener) Focus(*node.Node)                         {}

type config struct {
	prefix         string
	data           record.Record
	tracking       bool
	skipEmpty      bool
	validateHidden bool
	processors     map[string]ProcessorFunc
	renderers      map[string]RendererFunc
	conditionals   map[string]ConditionFunc
	formatter      primitive.Formatter
	dateLayouts    []string
	validator      Validator
	listener       Listener
	logger         *slog.Logger
	registerer     prometheus.Registerer
	beforeInsert   BeforeInsertFunc
}

func defaultConfig() config {
	return config{
		prefix:         DefaultPrefix,
		tracking:       true,
		validateHidden: true,
		processors:     map[string]ProcessorFunc{},
		renderers:      map[string]RendererFunc{},
		conditionals:   map[string]ConditionFunc{},
		listener:       NopListener{},
		logger:         slog.Default(),
	}
}

// Option configures a Binder.
type Option func(*config)

// WithPrefix sets the root scope. An empty prefix binds every field.
func WithPrefix(prefix string) Option {
	return func(c *config) { c.prefix = prefix }
}

// WithData sets the record the tree is filled with on creation.
func WithData(rec record.Record) Option {
	return func(c *config) { c.data = rec }
}

// WithTracking switches change tracking, on by default.
func WithTracking(on bool) Option {
	return func(c *config) { c.tracking = on }
}

// WithSkipEmpty leaves fields with blank text out of extracted records.
func WithSkipEmpty(on bool) Option {
	return func(c *config) { c.skipEmpty = on }
}

// WithValidateHidden makes hidden invalid fields fail an extract, which is
// the default.
func WithValidateHidden(on bool) Option {
	return func(c *config) { c.validateHidden = on }
}

// WithProcessor registers a named object processor.
func WithProcessor(name string, fn ProcessorFunc) Option {
	return func(c *config) { c.processors[name] = fn }
}

// WithRenderer registers a named object renderer.
func WithRenderer(name string, fn RendererFunc) Option {
	return func(c *config) { c.renderers[name] = fn }
}

// WithConditional registers a named custom visibility predicate.
func WithConditional(name string, fn ConditionFunc) Option {
	return func(c *config) { c.conditionals[name] = fn }
}

// WithFormatter formats and parses numbers for display.
func WithFormatter(f primitive.Formatter) Option {
	return func(c *config) { c.formatter = f }
}

// WithDateLayouts replaces the layouts tried for date fields.
func WithDateLayouts(layouts ...string) Option {
	return func(c *config) { c.dateLayouts = layouts }
}

// WithValidator validates fields before they are extracted.
func WithValidator(v Validator) Option {
	return func(c *config) { c.validator = v }
}

// WithListener receives collection and focus events.
func WithListener(l Listener) Option {
	return func(c *config) {
		if l != nil {
			c.listener = l
		}
	}
}

// WithLogger sets the logger, slog.Default() otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics registers binder metrics with reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) { c.registerer = reg }
}

// WithBeforeInsert hooks Insert.
func WithBeforeInsert(fn BeforeInsertFunc) Option {
	return func(c *config) { c.beforeInsert = fn }
}
