// Package catalog loads the destinations and the items a trip can be built
// from: transport options, hotels, attractions, food plans and shopping tiers.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/gdg-garage/trip-planner/internal/planner"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

var (
	ErrUnknownDestination = errors.New("unknown destination")
	ErrUnknownItem        = errors.New("unknown catalog item")
)

type Entry struct {
	ID      string         `yaml:"id" json:"id" validate:"required"`
	Name    string         `yaml:"name" json:"name" validate:"required"`
	Price   float64        `yaml:"price" json:"price" validate:"gte=0"`
	Details map[string]any `yaml:"details" json:"details,omitempty"`
}

// Item converts the entry into the value stored in a draft.
func (e Entry) Item() planner.Item {
	return planner.Item{
		ID:      e.ID,
		Name:    e.Name,
		Price:   decimal.NewFromFloat(e.Price),
		Details: e.Details,
	}
}

type ShoppingTier struct {
	ID     string  `yaml:"id" json:"id" validate:"required"`
	Name   string  `yaml:"name" json:"name" validate:"required"`
	Amount float64 `yaml:"amount" json:"amount" validate:"gte=0"`
}

// Flow is the set of choices shared by destinations planned the same way.
type Flow struct {
	ID                string             `yaml:"id" validate:"required"`
	LocalTravelPerDay float64            `yaml:"local_travel_per_day" validate:"gt=0"`
	Transport         map[string][]Entry `yaml:"transport" validate:"required,min=1,dive,min=1,dive"`
	FoodPlans         []Entry            `yaml:"food_plans" validate:"required,min=1,dive"`
	ShoppingTiers     []ShoppingTier     `yaml:"shopping_tiers" validate:"required,min=1,dive"`
}

type Destination struct {
	Slug        string  `yaml:"slug" validate:"required"`
	Name        string  `yaml:"name" validate:"required"`
	Flow        string  `yaml:"flow" validate:"required"`
	Seasonal    bool    `yaml:"seasonal"`
	Hotels      []Entry `yaml:"hotels" validate:"required,min=1,dive"`
	Attractions []Entry `yaml:"attractions" validate:"dive"`
}

type Catalog struct {
	Flows        []Flow        `yaml:"flows" validate:"required,min=1,dive"`
	Destinations []Destination `yaml:"destinations" validate:"required,min=1,dive"`

	flows        map[string]*Flow
	destinations map[string]*Destination
}

// Load parses the catalog compiled into the binary.
func Load() (*Catalog, error) {
	return Parse(embedded)
}

func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}
	if err := newValidator().Struct(&c); err != nil {
		return nil, fmt.Errorf("catalog: validate: %w", err)
	}
	if err := c.index(); err != nil {
		return nil, err
	}
	return &c, nil
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

func (c *Catalog) index() error {
	c.flows = make(map[string]*Flow, len(c.Flows))
	for i := range c.Flows {
		f := &c.Flows[i]
		if _, dup := c.flows[f.ID]; dup {
			return fmt.Errorf("catalog: duplicate flow %q", f.ID)
		}
		c.flows[f.ID] = f
	}

	c.destinations = make(map[string]*Destination, len(c.Destinations))
	for i := range c.Destinations {
		d := &c.Destinations[i]
		if _, dup := c.destinations[d.Slug]; dup {
			return fmt.Errorf("catalog: duplicate destination %q", d.Slug)
		}
		if _, ok := c.flows[d.Flow]; !ok {
			return fmt.Errorf("catalog: destination %q uses unknown flow %q", d.Slug, d.Flow)
		}
		if id, ok := firstDuplicate(d.Attractions); ok {
			return fmt.Errorf("catalog: destination %q lists attraction %q twice", d.Slug, id)
		}
		c.destinations[d.Slug] = d
	}
	return nil
}

func firstDuplicate(entries []Entry) (string, bool) {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.ID]; ok {
			return e.ID, true
		}
		seen[e.ID] = struct{}{}
	}
	return "", false
}

func (c *Catalog) Destination(slug string) (Destination, error) {
	d, ok := c.destinations[slug]
	if !ok {
		return Destination{}, fmt.Errorf("%w: %q", ErrUnknownDestination, slug)
	}
	return *d, nil
}

func (c *Catalog) Flow(slug string) (Flow, error) {
	d, err := c.Destination(slug)
	if err != nil {
		return Flow{}, err
	}
	return *c.flows[d.Flow], nil
}

// Modes lists the transport modes offered for a destination in a stable order.
func (c *Catalog) Modes(slug string) ([]planner.Mode, error) {
	f, err := c.Flow(slug)
	if err != nil {
		return nil, err
	}
	modes := make([]planner.Mode, 0, len(f.Transport))
	for m := range f.Transport {
		modes = append(modes, planner.Mode(m))
	}
	slices.Sort(modes)
	return modes, nil
}

func (c *Catalog) TransportOption(slug string, mode planner.Mode, id string) (planner.Item, error) {
	f, err := c.Flow(slug)
	if err != nil {
		return planner.Item{}, err
	}
	return find(f.Transport[string(mode)], id, "transport option")
}

func (c *Catalog) Hotel(slug, id string) (planner.Item, error) {
	d, err := c.Destination(slug)
	if err != nil {
		return planner.Item{}, err
	}
	return find(d.Hotels, id, "hotel")
}

func (c *Catalog) Attraction(slug, id string) (planner.Item, error) {
	d, err := c.Destination(slug)
	if err != nil {
		return planner.Item{}, err
	}
	return find(d.Attractions, id, "attraction")
}

func (c *Catalog) FoodPlan(slug, id string) (planner.Item, error) {
	f, err := c.Flow(slug)
	if err != nil {
		return planner.Item{}, err
	}
	return find(f.FoodPlans, id, "food plan")
}

func (c *Catalog) ShoppingTier(slug, id string) (ShoppingTier, error) {
	f, err := c.Flow(slug)
	if err != nil {
		return ShoppingTier{}, err
	}
	for _, t := range f.ShoppingTiers {
		if t.ID == id {
			return t, nil
		}
	}
	return ShoppingTier{}, fmt.Errorf("%w: shopping tier %q", ErrUnknownItem, id)
}

// LocalTravelCost is the per-day local travel charge for a destination. Unknown
// destinations get the planner default.
func (c *Catalog) LocalTravelCost(slug string) decimal.Decimal {
	f, err := c.Flow(slug)
	if err != nil {
		return planner.DefaultLocalTravelPerDay
	}
	return decimal.NewFromFloat(f.LocalTravelPerDay)
}

func find(entries []Entry, id, kind string) (planner.Item, error) {
	for _, e := range entries {
		if e.ID == id {
			return e.Item(), nil
		}
	}
	return planner.Item{}, fmt.Errorf("%w: %s %q", ErrUnknownItem, kind, id)
}
