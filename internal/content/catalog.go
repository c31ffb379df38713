// Package content loads the site copy and display records.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"animalrescue/internal/domain"
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Hero is the top section copy.
type Hero struct {
	Eyebrow     string               `yaml:"eyebrow"`
	Title       string               `yaml:"title"`
	Highlight   string               `yaml:"highlight"`
	TitleSuffix string               `yaml:"title_suffix"`
	Body        string               `yaml:"body"`
	Primary     string               `yaml:"primary"`
	Secondary   string               `yaml:"secondary"`
	Videos      []domain.VideoSource `yaml:"videos"`
}

// CallToAction is the closing donate section.
type CallToAction struct {
	Title     string `yaml:"title"`
	Body      string `yaml:"body"`
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	FinePrint string `yaml:"fine_print"`
	ImageURL  string `yaml:"image_url"`
}

// Catalog is everything the page displays besides the donation modal.
type Catalog struct {
	Brand           string              `yaml:"brand"`
	Tagline         string              `yaml:"tagline"`
	Nav             []domain.Link       `yaml:"nav"`
	Hero            Hero                `yaml:"hero"`
	Stats           []domain.ImpactStat `yaml:"stats"`
	ServicesHeading string              `yaml:"services_heading"`
	ServicesBody    string              `yaml:"services_body"`
	Services        []domain.Service    `yaml:"services"`
	AdoptHeading    string              `yaml:"adopt_heading"`
	AdoptBody       string              `yaml:"adopt_body"`
	Animals         []domain.Animal     `yaml:"animals"`
	CTA             CallToAction        `yaml:"cta"`
	Footer          []domain.LinkGroup  `yaml:"footer"`
	Legal           []domain.Link       `yaml:"legal"`
	Copyright       string              `yaml:"copyright"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(embeddedCatalog)
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	var errs []error
	if strings.TrimSpace(c.Brand) == "" {
		errs = append(errs, errors.New("brand is required"))
	}
	if len(c.Hero.Videos) == 0 {
		errs = append(errs, errors.New("hero needs at least one video source"))
	}
	if len(c.Stats) == 0 {
		errs = append(errs, errors.New("at least one impact stat is required"))
	}
	if len(c.Services) == 0 {
		errs = append(errs, errors.New("at least one service is required"))
	}
	if len(c.Animals) == 0 {
		errs = append(errs, errors.New("at least one animal is required"))
	}
	for i, a := range c.Animals {
		if strings.TrimSpace(a.Species) == "" {
			errs = append(errs, fmt.Errorf("animal %d: species is required", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("content: invalid catalog: %w", errors.Join(errs...))
	}
	return nil
}

// Animal returns the animal with the given species.
func (c *Catalog) Animal(species string) (domain.Animal, bool) {
	for _, a := range c.Animals {
		if strings.EqualFold(a.Species, species) {
			return a, true
		}
	}
	return domain.Animal{}, false
}
