package models

// Free is the "is the application free" answer
type Free string

const (
	FreeYes Free = "yes"
	FreeNo  Free = "no"
)

// Domain is the field of use an application belongs to
type Domain string

const (
	DomainECommerce Domain = "E-Commerce"
	DomainEducation Domain = "Education"
	DomainRobotics  Domain = "Robotics"
)

// Domains lists the accepted domains in display order
var Domains = []Domain{DomainECommerce, DomainEducation, DomainRobotics}

// AppRecord is one registered application description.
// Records are only created by an accepted submission and are never mutated afterwards.
type AppRecord struct {
	Name    string `json:"name" form:"name" validate:"required,english_letters"`
	Company string `json:"company" form:"company" validate:"required,arabic_letters"`
	Website string `json:"website" form:"website" validate:"http_url"`
	Free    string `json:"free" form:"free" validate:"oneof=yes no"`
	Domain  string `json:"domain" form:"domain" validate:"oneof=E-Commerce Education Robotics"`
	Summary string `json:"summary" form:"summary" validate:"min_trimmed=10"`
	Logo    string `json:"logo,omitempty" form:"logo"`
	Media   string `json:"media,omitempty" form:"media"`
}

// IsFree reports whether the record was registered as free
func (r AppRecord) IsFree() bool {
	return r.Free == string(FreeYes)
}

// AppList is the ordered list held in the storage slot, newest first
type AppList []AppRecord

// Prepend returns a new list with record at index 0 followed by the current entries
func (l AppList) Prepend(record AppRecord) AppList {
	out := make(AppList, 0, len(l)+1)
	out = append(out, record)
	return append(out, l...)
}
