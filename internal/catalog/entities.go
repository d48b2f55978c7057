package catalog

import "time"

// Article is a blog or news post on the marketing site.
type Article struct {
	ID          ID         `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Body        string     `json:"body,omitempty"` // rich text, stored as HTML
	CoverImage  string     `json:"coverImage,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Locale      string     `json:"locale,omitempty"`
	Status      Status     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (a Article) EntityID() string { return string(a.ID) }

// Equipment is a rentable piece of production gear.
type Equipment struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Category    string    `json:"category,omitempty"`
	Brand       string    `json:"brand,omitempty"`
	Model       string    `json:"model,omitempty"`
	Description string    `json:"description,omitempty"`
	DayRate     float64   `json:"dayRate,omitempty"`
	Currency    string    `json:"currency,omitempty"`
	Quantity    int       `json:"quantity,omitempty"`
	Available   bool      `json:"available"`
	Images      []string  `json:"images,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (e Equipment) EntityID() string { return string(e.ID) }

// Facility is a bookable physical space: studio, soundstage, editing suite.
type Facility struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Kind        string    `json:"kind,omitempty"`
	Location    string    `json:"location,omitempty"`
	AreaSqm     float64   `json:"areaSqm,omitempty"`
	Capacity    int       `json:"capacity,omitempty"`
	Amenities   []string  `json:"amenities,omitempty"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (f Facility) EntityID() string { return string(f.ID) }

// BroadcastUnit is a mobile production unit (OB van or flyaway kit).
type BroadcastUnit struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	CallSign    string    `json:"callSign,omitempty"`
	Kind        string    `json:"kind,omitempty"`
	CameraCount int       `json:"cameraCount,omitempty"`
	Description string    `json:"description,omitempty"`
	DayRate     float64   `json:"dayRate,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (b BroadcastUnit) EntityID() string { return string(b.ID) }

// Service is a production service offered by the company.
type Service struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary,omitempty"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s Service) EntityID() string { return string(s.ID) }

// Solution is a packaged offering aimed at a vertical (broadcast, events,
// corporate, education).
type Solution struct {
	ID          ID        `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary,omitempty"`
	Description string    `json:"description,omitempty"`
	Industries  []string  `json:"industries,omitempty"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (s Solution) EntityID() string { return string(s.ID) }

// StaffMember is a team member shown on the site and managed in the dashboard.
type StaffMember struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Photo     string    `json:"photo,omitempty"`
	Email     string    `json:"email,omitempty"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s StaffMember) EntityID() string { return string(s.ID) }

// Settings holds the site-wide configuration record.
type Settings struct {
	ID            ID                `json:"id"`
	SiteName      string            `json:"siteName"`
	Tagline       string            `json:"tagline,omitempty"`
	ContactEmail  string            `json:"contactEmail,omitempty"`
	Phone         string            `json:"phone,omitempty"`
	Address       string            `json:"address,omitempty"`
	SocialLinks   map[string]string `json:"socialLinks,omitempty"`
	DefaultLocale string            `json:"defaultLocale,omitempty"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func (s Settings) EntityID() string { return string(s.ID) }
