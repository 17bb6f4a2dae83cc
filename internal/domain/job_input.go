package domain

import (
	"strings"
	"time"
)

// CreateJobInput carries the raw values submitted for a new job posting.
// Categories are referenced by name.
type CreateJobInput struct {
	Title           string
	Email           string
	DateStart       *time.Time
	DateEnd         *time.Time
	AmountToPay     *int
	Avatar          *string
	Company         *string
	City            *string
	State           *string
	Country         *string
	PostalCode      *string
	PostCategory    string
	PostSubcategory string
	Address         *string
	Phone           *string
	Cellphone       *string
	Description     *string
	Terms           *string
	Deleted         bool
}

// Normalize returns a copy with surrounding whitespace removed from the
// contact and title fields. Applying it twice is the same as applying it once.
func (in CreateJobInput) Normalize() CreateJobInput {
	out := in
	out.Title = strings.TrimSpace(in.Title)
	out.Email = strings.TrimSpace(in.Email)
	out.Address = trimPtr(in.Address)
	out.Phone = trimPtr(in.Phone)
	out.Cellphone = trimPtr(in.Cellphone)
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

// JobPatch is a partial update. Nil fields are left untouched; an empty
// category name clears the reference.
type JobPatch struct {
	Title           *string
	Email           *string
	DateStart       *time.Time
	DateEnd         *time.Time
	AmountToPay     *int
	Avatar          *string
	Company         *string
	City            *string
	State           *string
	Country         *string
	PostalCode      *string
	PostCategory    *string
	PostSubcategory *string
	Address         *string
	Phone           *string
	Cellphone       *string
	Description     *string
	Terms           *string
}

// InputFromJob rebuilds the submission that would produce j.
func InputFromJob(j *Job) CreateJobInput {
	in := CreateJobInput{
		Title:       j.Title,
		Email:       j.Email,
		DateStart:   timePtr(j.DateStart),
		DateEnd:     timePtr(j.DateEnd),
		AmountToPay: j.AmountToPay,
		Avatar:      j.Avatar,
		Company:     j.Company,
		City:        j.City,
		State:       j.State,
		Country:     j.Country,
		PostalCode:  j.PostalCode,
		Address:     j.Address,
		Phone:       j.Phone,
		Cellphone:   j.Cellphone,
		Description: j.Description,
		Terms:       j.Terms,
		Deleted:     j.Deleted,
	}
	if j.PostCategory != nil {
		in.PostCategory = j.PostCategory.Name
	}
	if j.PostSubcategory != nil {
		in.PostSubcategory = j.PostSubcategory.Name
	}
	return in
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Apply merges the patch over in. Changing only the subcategory drops the
// current category so that it is inferred again from the new parent.
func (p JobPatch) Apply(in CreateJobInput) CreateJobInput {
	out := in
	if p.Title != nil {
		out.Title = *p.Title
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.DateStart != nil {
		out.DateStart = p.DateStart
	}
	if p.DateEnd != nil {
		out.DateEnd = p.DateEnd
	}
	if p.AmountToPay != nil {
		out.AmountToPay = p.AmountToPay
	}
	if p.Avatar != nil {
		out.Avatar = p.Avatar
	}
	if p.Company != nil {
		out.Company = p.Company
	}
	if p.City != nil {
		out.City = p.City
	}
	if p.State != nil {
		out.State = p.State
	}
	if p.Country != nil {
		out.Country = p.Country
	}
	if p.PostalCode != nil {
		out.PostalCode = p.PostalCode
	}
	if p.PostSubcategory != nil {
		out.PostSubcategory = *p.PostSubcategory
		if p.PostCategory == nil {
			out.PostCategory = ""
		}
	}
	if p.PostCategory != nil {
		out.PostCategory = *p.PostCategory
	}
	if p.Address != nil {
		out.Address = p.Address
	}
	if p.Phone != nil {
		out.Phone = p.Phone
	}
	if p.Cellphone != nil {
		out.Cellphone = p.Cellphone
	}
	if p.Description != nil {
		out.Description = p.Description
	}
	if p.Terms != nil {
		out.Terms = p.Terms
	}
	return out
}
