// Package model contains domain models passed between layers.
package model

// Source column names expected in a registration export.
const (
	ColID              = "ID"
	ColRegistrationID  = "registrationId"
	ColEventName       = "eventName"
	ColTicketTypeName  = "ticketTypeName"
	ColTicketTypePrice = "ticketTypePrice"
	ColGender          = "gender"
	ColBirthDate       = "birthDate"
	ColRegisterDate    = "registerDate"
	ColProvince        = "province"
	ColCity            = "city"
	ColCountry         = "country"
	ColPostalCode      = "postalCode"
	ColIsVirtual       = "isVirtual"
	ColShirtType       = "shirtType"
	ColShirtSize       = "shirtSize"
)

// Derived column names produced by the cleaning pipeline.
const (
	ColRegistrationYear    = "registration_year"
	ColRegistrationMonth   = "registration_month"
	ColRegistrationDay     = "registration_day"
	ColRegistrationWeekday = "registration_weekday"
	ColRegistrationWeek    = "registration_week"
	ColPriceTier           = "price_tier"
	ColAge                 = "age"
	ColAgeGroup            = "age_group"
	ColEventCategory       = "event_category"
	ColDistance            = "distance"
	ColDistanceCategory    = "distance_category"
)
