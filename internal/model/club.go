package model

import "time"

// ClubRole represents a member's role within a club roster.
// Roles form an explicit hierarchy: member < vice-president < president.
type ClubRole string

const (
	ClubRoleMember        ClubRole = "member"
	ClubRoleVicePresident ClubRole = "vice-president"
	ClubRolePresident     ClubRole = "president"
)

// Rank returns the position of the role in the hierarchy.
// Unknown roles rank below member.
func (r ClubRole) Rank() int {
	switch r {
	case ClubRolePresident:
		return 3
	case ClubRoleVicePresident:
		return 2
	case ClubRoleMember:
		return 1
	default:
		return 0
	}
}

// AtLeast returns true if the role ranks at or above the required role
func (r ClubRole) AtLeast(required ClubRole) bool {
	return r.Rank() >= required.Rank()
}

// IsValid returns true if the role is a valid club role
func (r ClubRole) IsValid() bool {
	return r.Rank() > 0
}

// ClubMember is a single roster entry
type ClubMember struct {
	UserID   string    `json:"user_id"`
	Role     ClubRole  `json:"role"`
	JoinedAt time.Time `json:"joined_at"`
}

// Club represents a student organization.
//
// The members roster is the authoritative membership record; MemberCount
// is derived and must equal len(Members) after every mutation. The owner
// always appears in the roster with the president role.
type Club struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Category        string       `json:"category"`
	ClubImage       *string      `json:"club_image,omitempty"`
	OwnerID         string       `json:"owner_id"`
	Members         []ClubMember `json:"members"`
	MemberCount     int          `json:"member_count"`
	Location        *string      `json:"location,omitempty"`
	MeetingSchedule string       `json:"meeting_schedule"`
	IsActive        bool         `json:"is_active"`
	CreatedOn       time.Time    `json:"created_on"`
	UpdatedOn       time.Time    `json:"updated_on"`
}

// RoleOf returns the club role held by the given user, or ("", false)
// if the user is not on the roster.
func (c *Club) RoleOf(userID string) (ClubRole, bool) {
	for _, m := range c.Members {
		if m.UserID == userID {
			return m.Role, true
		}
	}
	return "", false
}

// HasOfficer returns true if the given user holds an officer role
// (vice-president or president) in the club.
func (c *Club) HasOfficer(userID string) bool {
	role, ok := c.RoleOf(userID)
	return ok && role.AtLeast(ClubRoleVicePresident)
}

// ClubCategory constants
const (
	ClubCategorySports     = "sports"
	ClubCategoryArts       = "arts"
	ClubCategoryAcademic   = "academic"
	ClubCategorySocial     = "social"
	ClubCategoryTechnology = "technology"
	ClubCategoryCulture    = "culture"
	ClubCategoryOther      = "other"
)

// IsValidClubCategory returns true for a recognized category
func IsValidClubCategory(category string) bool {
	switch category {
	case ClubCategorySports, ClubCategoryArts, ClubCategoryAcademic,
		ClubCategorySocial, ClubCategoryTechnology, ClubCategoryCulture,
		ClubCategoryOther:
		return true
	default:
		return false
	}
}

// MeetingSchedule constants
const (
	MeetingScheduleWeekly   = "weekly"
	MeetingScheduleBiWeekly = "bi-weekly"
	MeetingScheduleMonthly  = "monthly"
	MeetingScheduleAsNeeded = "as-needed"
)

// Validation bounds for club fields
const (
	MinClubNameLength = 3
	MaxClubNameLength = 100
	MinClubDescLength = 10
)

// CreateClubRequest represents a request to create a club
type CreateClubRequest struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	Location        *string `json:"location,omitempty"`
	MeetingSchedule *string `json:"meeting_schedule,omitempty"`
}

// Validate checks the create request fields
func (r *CreateClubRequest) Validate() []FieldError {
	var errs []FieldError

	if len(r.Name) < MinClubNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "club name must be at least 3 characters long"})
	} else if len(r.Name) > MaxClubNameLength {
		errs = append(errs, FieldError{Field: "name", Message: "club name must not exceed 100 characters"})
	}
	if len(r.Description) < MinClubDescLength {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at least 10 characters long"})
	}
	if !IsValidClubCategory(r.Category) {
		errs = append(errs, FieldError{Field: "category", Message: "invalid category"})
	}

	return errs
}

// UpdateClubRequest represents a partial club update.
// Nil fields are left untouched, so an explicit empty string is
// distinguishable from an absent field.
type UpdateClubRequest struct {
	Name            *string `json:"name,omitempty"`
	Description     *string `json:"description,omitempty"`
	Category        *string `json:"category,omitempty"`
	Location        *string `json:"location,omitempty"`
	MeetingSchedule *string `json:"meeting_schedule,omitempty"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

// Validate checks the provided update fields
func (r *UpdateClubRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Name != nil {
		if len(*r.Name) < MinClubNameLength {
			errs = append(errs, FieldError{Field: "name", Message: "club name must be at least 3 characters long"})
		} else if len(*r.Name) > MaxClubNameLength {
			errs = append(errs, FieldError{Field: "name", Message: "club name must not exceed 100 characters"})
		}
	}
	if r.Description != nil && len(*r.Description) < MinClubDescLength {
		errs = append(errs, FieldError{Field: "description", Message: "description must be at least 10 characters long"})
	}
	if r.Category != nil && !IsValidClubCategory(*r.Category) {
		errs = append(errs, FieldError{Field: "category", Message: "invalid category"})
	}

	return errs
}

// AddMemberRequest represents a request to add a user to a club roster
type AddMemberRequest struct {
	UserID string `json:"user_id"`
}

// ClubFilter narrows club listings
type ClubFilter struct {
	Category string
	Search   string
	Page     int
	Limit    int
}
