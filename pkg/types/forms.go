package types

// ApplicationForm mirrors the public application form field names.
type ApplicationForm struct {
	FullName           string `form:"fullName"`
	MotherMaidenName   string `form:"motherMaidenName"`
	Email              string `form:"email"`
	Phone              string `form:"phone"`
	Address            string `form:"address"`
	City               string `form:"city"`
	State              string `form:"state"`
	ZipCode            string `form:"zipCode"`
	Country            string `form:"country"`
	DateOfBirth        string `form:"dateOfBirth"`
	Gender             string `form:"gender"`
	Occupation         string `form:"occupation"`
	MonthlyIncome      string `form:"monthlyIncome"`
	DeliveryPreference string `form:"deliveryPreference"`
	WinningCode        string `form:"winningCode"`
	Reason             string `form:"reason"`
}

// WinnerForm mirrors the admin winner form field names.
type WinnerForm struct {
	Name        string `form:"winner_name"`
	Location    string `form:"winner_location"`
	WinningCode string `form:"winning_code"`
	FBLink      string `form:"winner_fblink"`
	Status      string `form:"winner_status"`
	Amount      string `form:"winning_amount"`
	PaymentFee  string `form:"winner_paymentfee"`
	Currency    string `form:"currency"`
	RemoveImage string `form:"remove_image"`
}
