package models

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Education struct {
	College string `json:"college" bson:"college" yaml:"college"`
	Degree  string `json:"degree" bson:"degree" yaml:"degree"`
	Year    string `json:"year" bson:"year" yaml:"year"`
}

type Links struct {
	GitHub    string `json:"github,omitempty" bson:"github,omitempty" yaml:"github" validate:"omitempty,url"`
	LinkedIn  string `json:"linkedin,omitempty" bson:"linkedin,omitempty" yaml:"linkedin" validate:"omitempty,url"`
	Portfolio string `json:"portfolio,omitempty" bson:"portfolio,omitempty" yaml:"portfolio" validate:"omitempty,url"`
	Resume    string `json:"resume,omitempty" bson:"resume,omitempty" yaml:"resume" validate:"omitempty,url"`
}

// Project is embedded in a Profile and has no identity beyond its position in
// Profile.Projects.
type Project struct {
	Title       string   `json:"title" bson:"title" yaml:"title"`
	Description []string `json:"description" bson:"description" yaml:"description"`
	TechStack   []string `json:"techStack" bson:"techStack" yaml:"techStack"`
	Link        string   `json:"link,omitempty" bson:"link,omitempty" yaml:"link" validate:"omitempty,url"`
	Repo        string   `json:"repo,omitempty" bson:"repo,omitempty" yaml:"repo" validate:"omitempty,url"`
}

// Profile is the single portfolio record. The collection never holds more than one.
type Profile struct {
	ID          bson.ObjectID `json:"_id,omitzero" bson:"_id,omitempty" yaml:"-"`
	Name        string        `json:"name" bson:"name" yaml:"name" validate:"required"`
	Title       string        `json:"title" bson:"title" yaml:"title"`
	Description string        `json:"description" bson:"description" yaml:"description"`
	Email       string        `json:"email" bson:"email" yaml:"email" validate:"omitempty,email"`
	Skills      []string      `json:"skills" bson:"skills" yaml:"skills"`
	Education   []Education   `json:"education" bson:"education" yaml:"education" validate:"dive"`
	Links       Links         `json:"links" bson:"links" yaml:"links"`
	Projects    []Project     `json:"projects" bson:"projects" yaml:"projects" validate:"dive"`
}

// Normalize replaces nil slices with empty ones so absent arrays serialize as [].
func (p *Profile) Normalize() {
	if p == nil {
		return
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	if p.Projects == nil {
		p.Projects = []Project{}
	}
	for i := range p.Projects {
		if p.Projects[i].Description == nil {
			p.Projects[i].Description = []string{}
		}
		if p.Projects[i].TechStack == nil {
			p.Projects[i].TechStack = []string{}
		}
	}
}
