package resource

import (
	"fmt"
	"sort"

	"github.com/oceanticsports/oceantic-admin/internal/common"
)

var genderOptions = []string{"Laki-laki", "Perempuan"}

// Option sources shared by several resources.
var (
	Events = &OptionSource{
		Name:       "events",
		Path:       "events/getAllEvents",
		LabelField: []string{"title"},
	}
	OpenEvents = &OptionSource{
		Name:       "open-events",
		Path:       "events/getAllEventsOpen",
		LabelField: []string{"title"},
	}
	HeatDetails = &OptionSource{
		Name:       "heat-details",
		Path:       "getAllHeatDetails",
		LabelField: []string{"heat_number", "race_category_id"},
	}
)

// PaymentStatuses are the values an administrator may set on a payment.
var PaymentStatuses = []string{"Pending", "Success", "Cancelled", "Refunded"}

var Articles = &Descriptor{
	Name:  "articles",
	Title: "Articles",
	Endpoints: Endpoints{
		List:   "articles/getAllArticles",
		Get:    "articles/getArticleById/{id}",
		Create: "articles/createArticle",
		Update: "articles/updateArticle/{id}",
		Delete: "articles/deleteArticle/{id}",
	},
	Fields: []Field{
		{Name: "title", Label: "Title", Required: true},
		{Name: "content", Label: "Content", Kind: KindLongText, Required: true},
		{Name: "category", Label: "Category", Required: true},
	},
	Columns:   []string{"id", "title", "category", "image_url"},
	Search:    []string{"title", "content", "category"},
	Filter:    "category",
	Multipart: true,
	Files: &Files{
		Field:      "image",
		URLField:   "image_url",
		KeepField:  "image_url_existing",
		RemoveFlag: "remove_image",
	},
	AuthorField: "user_id",
}

var eventStatuses = []string{"Upcoming", "Open for Registration", "Closed", "Completed", "Cancelled"}

var EventsResource = &Descriptor{
	Name:  "events",
	Title: "Events",
	Endpoints: Endpoints{
		List:   "events/getAllEvents",
		Get:    "events/getEventsById/{id}",
		Create: "createEvent",
		Update: "events/edit/{id}",
		Delete: "events/{id}",
	},
	Fields: []Field{
		{Name: "title", Label: "Title", Required: true},
		{Name: "event_date", Label: "Event date", Kind: KindDate, Required: true},
		{Name: "location", Label: "Location", Required: true},
		{Name: "description", Label: "Description", Kind: KindLongText},
		{Name: "registration_start_date", Label: "Registration opens", Kind: KindDateTime},
		{Name: "registration_end_date", Label: "Registration closes", Kind: KindDateTime},
		{Name: "event_status", Label: "Status", Kind: KindSelect, Options: eventStatuses, Default: "Upcoming", Required: true},
	},
	Columns: []string{"id", "title", "event_date", "location", "event_status"},
	Search:  []string{"title", "location", "event_date"},
	Filter:  "event_status",
}

var RaceCategories = &Descriptor{
	Name:  "race-categories",
	Title: "Race categories",
	Endpoints: Endpoints{
		List:   "getAllRaceCategoriesByEventId/{parent}",
		Get:    "getRaceCategoryById/{id}",
		Create: "createRaceCategory",
		Update: "updateRaceCategory/{id}",
		Delete: "deleteRaceCategory/{id}",
	},
	Fields: []Field{
		{Name: "event_id", Label: "Event", Kind: KindNumber, Required: true},
		{Name: "race_number", Label: "Race number", Kind: KindNumber, Required: true},
		{Name: "distance", Label: "Distance", Required: true},
		{Name: "swim_style", Label: "Swim style", Required: true},
		{Name: "age_group_class", Label: "Age group", Required: true},
		{Name: "gender_category", Label: "Gender", Kind: KindSelect, Options: []string{"Laki-laki", "Perempuan", "Mixed"}, Required: true},
	},
	Columns: []string{"id", "race_number", "distance", "swim_style", "age_group_class", "gender_category"},
	Search:  []string{"race_number", "distance", "swim_style", "age_group_class", "gender_category"},
	Filter:  "gender_category",
	Parent:  &Parent{Field: "event_id", Label: "Event", Source: Events},
}

var HeatSwimmers = &Descriptor{
	Name:  "heat-swimmers",
	Title: "Heat swimmers",
	Endpoints: Endpoints{
		List:   "getAllHeatSwimmersByHeatDetailId/{parent}",
		Get:    "getHeatSwimmerById/{id}",
		Create: "createHeatSwimmer",
		Update: "updateHeatSwimmer/{id}",
		Delete: "deleteHeatSwimmer/{id}",
	},
	Fields: []Field{
		{Name: "heat_detail_id", Label: "Heat", Kind: KindNumber, Required: true},
		{Name: "lane_number", Label: "Lane", Kind: KindNumber, Required: true},
		{Name: "swimmer_name", Label: "Swimmer", Required: true},
		{Name: "club_name", Label: "Club"},
		{Name: "qet_time", Label: "Entry time"},
		{Name: "result_time", Label: "Result time"},
		{Name: "registration_id", Label: "Registration"},
	},
	Columns: []string{"id", "lane_number", "swimmer_name", "club_name", "qet_time", "result_time"},
	Search:  []string{"swimmer_name", "club_name", "lane_number"},
	Parent:  &Parent{Field: "heat_detail_id", Label: "Heat", Source: HeatDetails},
}

var Payments = &Descriptor{
	Name:      "payments",
	Title:     "Payments",
	Endpoints: Endpoints{List: "getAllPayment"},
	Columns:   []string{"id", "full_name", "title", "payment_status", "registration_date"},
	Search:    []string{"full_name", "title"},
	Filter:    "payment_status",
	Status: &Action{
		Name:     "status",
		Method:   "PUT",
		Path:     "updatePaymentStatusAdmin",
		IDKey:    "id",
		ValueKey: "newStatus",
		Field:    "payment_status",
		Options:  PaymentStatuses,
	},
	AssetField: "payment_photo_url",
}

var Participants = &Descriptor{
	Name:  "participants",
	Title: "Participants",
	Endpoints: Endpoints{
		List:   "getAllParticipants",
		Get:    "getParticipantById/{id}",
		Update: "editParticipant/{id}",
		Delete: "deleteParticipant/{id}",
	},
	Fields: []Field{
		{Name: "full_name", Label: "Full name", Required: true},
		{Name: "gender", Label: "Gender", Kind: KindSelect, Options: genderOptions, Required: true},
		{Name: "club_name", Label: "Club"},
		{Name: "stroke_category", Label: "Stroke"},
		{Name: "age_category", Label: "Age category"},
		{Name: "distance_category", Label: "Distance"},
	},
	Columns: []string{"id", "full_name", "gender", "club_name", "stroke_category", "age_category", "distance_category"},
	Search:  []string{"full_name", "club_name"},
	Filter:  "gender",
}

var Registrations = &Descriptor{
	Name:  "registrations",
	Title: "Registrations",
	Endpoints: Endpoints{
		Get:    "getRegistrationById/{id}",
		Update: "editRegistration/{id}",
	},
	Fields: []Field{
		{Name: "full_name", Label: "Full name", Required: true},
		{Name: "date_of_birth", Label: "Date of birth", Kind: KindDate},
		{Name: "gender", Label: "Gender", Kind: KindSelect, Options: genderOptions},
		{Name: "email", Label: "Email", Kind: KindEmail},
		{Name: "phone_number", Label: "Phone"},
		{Name: "club_name", Label: "Club"},
		{Name: "emergency_contact_name", Label: "Emergency contact"},
		{Name: "emergency_contact_phone", Label: "Emergency phone"},
		{Name: "payment_status", Label: "Payment status", Kind: KindSelect, Options: []string{"Pending", "Paid", "Rejected"}, Default: "Pending"},
		{Name: "total_fee", Label: "Total fee", Kind: KindNumber},
	},
}

var Users = &Descriptor{
	Name:  "users",
	Title: "Users",
	Endpoints: Endpoints{
		List:   "getAllUsers",
		Get:    "getUserById/{id}",
		Create: "createUser",
		Update: "updateUserProfile/{id}",
		Delete: "deleteUser/{id}",
	},
	Fields: []Field{
		{Name: "username", Label: "Username", Required: true},
		{Name: "fullname", Label: "Full name", Required: true},
		{Name: "email", Label: "Email", Kind: KindEmail, Required: true},
		{Name: "nohp", Label: "Phone"},
		{Name: "password", Label: "Password", Kind: KindPassword, Required: true, CreateOnly: true},
		{Name: "repassword", Label: "Repeat password", Kind: KindPassword, Required: true, CreateOnly: true, Transient: true, EqualTo: "password"},
		{Name: "role", Label: "Role", Kind: KindSelect, Options: []string{common.AdminRole, "member"}, Default: "member", Required: true},
		{Name: "gender", Label: "Gender", Kind: KindSelect, Options: genderOptions},
	},
	Columns: []string{"id", "username", "fullname", "email", "nohp", "role"},
	Search:  []string{"fullname", "username", "email", "nohp"},
	Filter:  "role",
}

// Registry indexes descriptors by name.
type Registry struct {
	byName map[string]*Descriptor
}

// NewRegistry builds a registry. Names must be unique.
func NewRegistry(ds ...*Descriptor) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Descriptor, len(ds))}
	for _, d := range ds {
		if _, dup := r.byName[d.Name]; dup {
			return nil, fmt.Errorf("duplicate resource %q", d.Name)
		}
		r.byName[d.Name] = d
	}
	return r, nil
}

// Default returns the registry of every resource the admin client manages.
func Default() *Registry {
	r, err := NewRegistry(Articles, EventsResource, RaceCategories, HeatSwimmers, Payments, Participants, Registrations, Users)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the descriptor called name or common.ErrUnknownResource.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownResource, name)
	}
	return d, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.byName))
	for n := range r.byName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
