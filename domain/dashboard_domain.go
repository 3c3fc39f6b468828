package domain

var (
	MessageSuccessGetDashboard = "dashboard retrieved successfully"
	MessageFailedGetDashboard  = "failed to retrieve dashboard"
)

const DashboardRecentLimit = 5

type (
	BloodGroupTotal struct {
		BloodGroup string  `json:"blood_group"`
		TotalUnits float64 `json:"total_units"`
	}

	BloodGroupCount struct {
		BloodGroup string `json:"blood_group"`
		Count      int64  `json:"count"`
	}

	AdminDashboard struct {
		TotalDonors        int64             `json:"total_donors"`
		AvailableDonors    int64             `json:"available_donors"`
		ActiveBloodBanks   int64             `json:"total_blood_banks"`
		PendingRequests    int64             `json:"pending_requests"`
		PendingDonations   int64             `json:"pending_donations"`
		InventoryByGroup   []BloodGroupTotal `json:"blood_inventory"`
		RecentRequests     []BloodRequest    `json:"recent_requests"`
		RecentDonations    []Donation        `json:"recent_donations"`
		DonorsByBloodGroup []BloodGroupCount `json:"donors_by_blood_group"`
	}

	DonorDashboard struct {
		Profile        *DonorProfile    `json:"donor_profile"`
		Donations      []Donation       `json:"donations"`
		MyRequests     []BloodRequest   `json:"my_requests"`
		Inventory      []BloodInventory `json:"blood_inventory"`
		TotalDonations int64            `json:"total_donations"`
	}
)
