package domain

import (
	"fmt"
	"time"
)

// SetField assigns a single column value on j. The value must have the Go type
// of the matching Job attribute.
func SetField(j *Job, column string, value any) error {
	var ok bool
	switch column {
	case FieldTitle:
		j.Title, ok = value.(string)
	case FieldEmail:
		j.Email, ok = value.(string)
	case FieldAvatar:
		j.Avatar, ok = value.(*string)
	case FieldCompany:
		j.Company, ok = value.(*string)
	case FieldCity:
		j.City, ok = value.(*string)
	case FieldState:
		j.State, ok = value.(*string)
	case FieldCountry:
		j.Country, ok = value.(*string)
	case FieldPostalCode:
		j.PostalCode, ok = value.(*string)
	case FieldPostCategory:
		j.PostCategory, ok = value.(*PostArea)
	case FieldPostSubcategory:
		j.PostSubcategory, ok = value.(*PostArea)
	case FieldPaymentComission:
		j.PaymentComission, ok = value.(*PaymentComission)
	case FieldDateStart:
		j.DateStart, ok = value.(time.Time)
	case FieldDateEnd:
		j.DateEnd, ok = value.(time.Time)
	case FieldAddress:
		j.Address, ok = value.(*string)
	case FieldPhone:
		j.Phone, ok = value.(*string)
	case FieldCellphone:
		j.Cellphone, ok = value.(*string)
	case FieldDescription:
		j.Description, ok = value.(*string)
	case FieldTerms:
		j.Terms, ok = value.(*string)
	case FieldAmountToPay:
		j.AmountToPay, ok = value.(*int)
	case FieldSlug:
		j.Slug, ok = value.(string)
	case FieldDeleted:
		j.Deleted, ok = value.(bool)
	default:
		return fmt.Errorf("job: unknown field %q", column)
	}
	if !ok {
		return fmt.Errorf("job: invalid value type %T for field %q", value, column)
	}
	return nil
}

// ChangedFields lists the columns whose values differ between before and after,
// in the shape expected by JobRepository.UpdateFields.
func ChangedFields(before, after *Job) map[string]any {
	changed := map[string]any{}
	if before.Title != after.Title {
		changed[FieldTitle] = after.Title
	}
	if before.Email != after.Email {
		changed[FieldEmail] = after.Email
	}
	strFields := []struct {
		name   string
		before *string
		after  *string
	}{
		{FieldAvatar, before.Avatar, after.Avatar},
		{FieldCompany, before.Company, after.Company},
		{FieldCity, before.City, after.City},
		{FieldState, before.State, after.State},
		{FieldCountry, before.Country, after.Country},
		{FieldPostalCode, before.PostalCode, after.PostalCode},
		{FieldAddress, before.Address, after.Address},
		{FieldPhone, before.Phone, after.Phone},
		{FieldCellphone, before.Cellphone, after.Cellphone},
		{FieldDescription, before.Description, after.Description},
		{FieldTerms, before.Terms, after.Terms},
	}
	for _, f := range strFields {
		if !equalStringPtr(f.before, f.after) {
			changed[f.name] = f.after
		}
	}
	if !sameArea(before.PostCategory, after.PostCategory) {
		changed[FieldPostCategory] = after.PostCategory
	}
	if !sameArea(before.PostSubcategory, after.PostSubcategory) {
		changed[FieldPostSubcategory] = after.PostSubcategory
	}
	if !before.DateStart.Equal(after.DateStart) {
		changed[FieldDateStart] = after.DateStart
	}
	if !before.DateEnd.Equal(after.DateEnd) {
		changed[FieldDateEnd] = after.DateEnd
	}
	if !equalIntPtr(before.AmountToPay, after.AmountToPay) {
		changed[FieldAmountToPay] = after.AmountToPay
	}
	if !equalComission(before.PaymentComission, after.PaymentComission) {
		changed[FieldPaymentComission] = after.PaymentComission
	}
	if before.Slug != after.Slug {
		changed[FieldSlug] = after.Slug
	}
	if before.Deleted != after.Deleted {
		changed[FieldDeleted] = after.Deleted
	}
	return changed
}

func equalStringPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalComission(a, b *PaymentComission) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Percentage == b.Percentage
}

func sameArea(a, b *PostArea) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
