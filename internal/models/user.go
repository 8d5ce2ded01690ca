package models

// Roles accepted by the demo login.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
	RoleSecurity = "security"
)

type UserProfile struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Membership   string `json:"membership"`
	TotalOrders  int    `json:"totalOrders"`
	TotalSavings int    `json:"totalSavings"`
	JoinedDate   string `json:"joinedDate"`
}

type Settings struct {
	Notifications      bool   `json:"notifications"`
	EmailNotifications bool   `json:"emailNotifications"`
	SMSNotifications   bool   `json:"smsNotifications"`
	Theme              string `json:"theme"`
	Language           string `json:"language"`
}

// Preferences is everything persisted under the customer's storage key.
type Preferences struct {
	Profile  UserProfile `json:"userProfile"`
	Settings Settings    `json:"settings"`
}

// ProfilePatch carries the editable profile fields; nil means unchanged.
type ProfilePatch struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

type SettingsPatch struct {
	Notifications      *bool   `json:"notifications"`
	EmailNotifications *bool   `json:"emailNotifications"`
	SMSNotifications   *bool   `json:"smsNotifications"`
	Theme              *string `json:"theme"`
	Language           *string `json:"language"`
}
