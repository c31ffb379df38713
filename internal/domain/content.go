package domain

// Service is a program card in the services grid.
type Service struct {
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Icon        string  `yaml:"icon"`
	ImageURL    string  `yaml:"image_url"`
	Delay       float64 `yaml:"delay"`
}

// ImpactStat is one figure in the impact banner.
type ImpactStat struct {
	Number string `yaml:"number"`
	Label  string `yaml:"label"`
}

// Animal is a sponsorable resident shown in the adopt grid.
type Animal struct {
	Name     string `yaml:"name"`
	Species  string `yaml:"species"`
	ImageURL string `yaml:"image_url"`
	Location string `yaml:"location"`
}

// Link is a plain navigation or footer link.
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// LinkGroup is a titled footer column.
type LinkGroup struct {
	Title string `yaml:"title"`
	Links []Link `yaml:"links"`
}

// VideoSource is one <source> of the hero background loop.
type VideoSource struct {
	Path string `yaml:"path"`
	Type string `yaml:"type"`
}
