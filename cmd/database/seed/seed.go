package seed

import (
	"context"
	"errors"
	"time"

	"bloodbank/domain"
	"bloodbank/entities"
	"bloodbank/internal/logger"
	"bloodbank/pkg/bloodbank"
	"bloodbank/pkg/bloodrequest"
	"bloodbank/pkg/donation"
	"bloodbank/pkg/donor"
	"bloodbank/pkg/transaction"
	"bloodbank/pkg/user"

	"golang.org/x/crypto/bcrypt"
)

const (
	AdminUsername = "admin"
	AdminPassword = "admin123"
	DonorPassword = "donor123"

	sampleUnits       = 25.00
	samplePatientName = "Jane Doe"
)

type (
	sampleBank struct {
		Name, Address, City, Phone, Email string
	}

	sampleDonor struct {
		Username, Email, FirstName, LastName, Phone string

		BloodGroup  string
		DateOfBirth time.Time
		Gender      string
		Address     string
		City        string
		State       string
		ZipCode     string
		IsAvailable bool
		// DonatedDaysAgo > 0 records an approved donation that long ago.
		DonatedDaysAgo int
	}
)

var sampleBanks = []sampleBank{
	{"Dhaka Medical College Blood Bank", "Shahbagh, Dhaka", "Dhaka", "02-9661063", "dmch@bloodbank.com"},
	{"Chittagong Medical College Blood Bank", "Panchlaish, Chittagong", "Chittagong", "031-2503650", "cmch@bloodbank.com"},
	{"Square Hospital Blood Bank", "18/F, Bir Uttam Qazi Nuruzzaman Sarak", "Dhaka", "02-8159457", "square@bloodbank.com"},
}

var sampleDonors = []sampleDonor{
	{Username: "john_doe", Email: "john@example.com", FirstName: "John", LastName: "Doe", Phone: "01712345679",
		BloodGroup: "A+", DateOfBirth: date(1995, 5, 15), Gender: "male", Address: "12 Green Road",
		City: "Dhaka", State: "Dhaka Division", ZipCode: "1205", IsAvailable: true},
	{Username: "sarah_smith", Email: "sarah@example.com", FirstName: "Sarah", LastName: "Smith", Phone: "01812345680",
		BloodGroup: "O+", DateOfBirth: date(1992, 8, 20), Gender: "female", Address: "45 Gulshan Avenue",
		City: "Dhaka", State: "Dhaka Division", ZipCode: "1212", IsAvailable: true},
	{Username: "mike_wilson", Email: "mike@example.com", FirstName: "Mike", LastName: "Wilson", Phone: "01912345681",
		BloodGroup: "B+", DateOfBirth: date(1990, 3, 10), Gender: "male", Address: "78 Banani Road",
		City: "Dhaka", State: "Dhaka Division", ZipCode: "1213", IsAvailable: true},
	{Username: "emma_brown", Email: "emma@example.com", FirstName: "Emma", LastName: "Brown", Phone: "01612345682",
		BloodGroup: "AB+", DateOfBirth: date(1988, 12, 5), Gender: "female", Address: "23 Dhanmondi Road",
		City: "Dhaka", State: "Dhaka Division", ZipCode: "1209", IsAvailable: false, DonatedDaysAgo: 30},
	{Username: "alex_jones", Email: "alex@example.com", FirstName: "Alex", LastName: "Jones", Phone: "01512345683",
		BloodGroup: "O-", DateOfBirth: date(1993, 7, 25), Gender: "male", Address: "56 Uttara Sector 7",
		City: "Dhaka", State: "Dhaka Division", ZipCode: "1230", IsAvailable: true},
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Seeder loads demo data. Every step is get-or-create so it can run on every deploy.
type Seeder struct {
	Users      user.UserRepository
	Banks      bloodbank.BloodBankRepository
	Donors     donor.DonorRepository
	Donations  donation.DonationRepository
	Requests   bloodrequest.BloodRequestRepository
	Transactor transaction.Transactor
	Log        *logger.Logger

	Now        func() time.Time
	HashCost   int
	AdminEmail string
}

func (s *Seeder) Run(ctx context.Context) error {
	if s.Now == nil {
		s.Now = time.Now
	}
	if s.HashCost == 0 {
		s.HashCost = bcrypt.DefaultCost
	}
	if s.AdminEmail == "" {
		s.AdminEmail = "admin@bloodbank.com"
	}

	return s.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		admin, err := s.seedAdmin(ctx)
		if err != nil {
			return err
		}
		banks, err := s.seedBanks(ctx)
		if err != nil {
			return err
		}
		if err := s.seedDonors(ctx, admin, banks[0]); err != nil {
			return err
		}
		return s.seedRequest(ctx)
	})
}

func (s *Seeder) seedAdmin(ctx context.Context) (entities.User, error) {
	admin, err := s.Users.GetUserByUsername(ctx, AdminUsername)
	if err == nil {
		s.Log.Warn("admin user already exists")
		return admin, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return entities.User{}, err
	}

	admin, err = s.createUser(ctx, entities.User{
		Username:    AdminUsername,
		Email:       s.AdminEmail,
		FirstName:   "System",
		LastName:    "Administrator",
		PhoneNumber: "01712345678",
		Role:        domain.RoleAdmin,
	}, AdminPassword)
	if err != nil {
		return entities.User{}, err
	}
	s.Log.Info("created admin user")
	return admin, nil
}

func (s *Seeder) seedBanks(ctx context.Context) ([]entities.BloodBank, error) {
	existing, err := s.Banks.ListBanks(ctx, false)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]entities.BloodBank, len(existing))
	for _, bank := range existing {
		byName[bank.Name] = bank
	}

	banks := make([]entities.BloodBank, 0, len(sampleBanks))
	for _, sample := range sampleBanks {
		bank, ok := byName[sample.Name]
		if !ok {
			bank, err = s.Banks.CreateBank(ctx, entities.BloodBank{
				Name:        sample.Name,
				Address:     sample.Address,
				City:        sample.City,
				PhoneNumber: sample.Phone,
				Email:       sample.Email,
				IsActive:    true,
			})
			if err != nil {
				return nil, err
			}
			s.Log.WithFields(map[string]any{"bank": bank.Name}).Info("created blood bank")
		}
		banks = append(banks, bank)

		for _, group := range domain.BloodGroups {
			_, found, err := s.Banks.FindInventory(ctx, bank.ID.String(), group)
			if err != nil {
				return nil, err
			}
			if found {
				continue
			}
			if _, err := s.Banks.CreateInventory(ctx, entities.BloodInventory{
				BloodBankID:    bank.ID,
				BloodGroup:     group,
				UnitsAvailable: sampleUnits,
				LastUpdated:    s.Now(),
			}); err != nil {
				return nil, err
			}
		}
	}
	return banks, nil
}

func (s *Seeder) seedDonors(ctx context.Context, admin entities.User, bank entities.BloodBank) error {
	for _, sample := range sampleDonors {
		taken, err := s.Users.CheckUsername(ctx, sample.Username)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		u, err := s.createUser(ctx, entities.User{
			Username:    sample.Username,
			Email:       sample.Email,
			FirstName:   sample.FirstName,
			LastName:    sample.LastName,
			PhoneNumber: sample.Phone,
			Role:        domain.RoleDonor,
		}, DonorPassword)
		if err != nil {
			return err
		}

		profile, err := s.Donors.CreateProfile(ctx, entities.DonorProfile{
			UserID:      u.ID,
			BloodGroup:  sample.BloodGroup,
			DateOfBirth: sample.DateOfBirth,
			Gender:      sample.Gender,
			Address:     sample.Address,
			City:        sample.City,
			State:       sample.State,
			ZipCode:     sample.ZipCode,
			IsAvailable: sample.IsAvailable,
		})
		if err != nil {
			return err
		}
		s.Log.WithFields(map[string]any{"username": u.Username, "blood_group": profile.BloodGroup}).Info("created donor")

		if sample.DonatedDaysAgo == 0 {
			continue
		}
		donated := s.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, -sample.DonatedDaysAgo)
		if _, err := s.Donations.CreateDonation(ctx, entities.DonationHistory{
			DonorID:      profile.ID,
			BloodBankID:  &bank.ID,
			DonationDate: donated,
			Units:        1,
			Status:       domain.DonationStatusApproved,
			ApprovedByID: &admin.ID,
		}); err != nil {
			return err
		}
		if err := s.Donors.SetLastDonationDate(ctx, profile.ID.String(), donated); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedRequest(ctx context.Context) error {
	requests, err := s.Requests.ListRequests(ctx, "", 0)
	if err != nil {
		return err
	}
	for _, request := range requests {
		if request.PatientName == samplePatientName {
			return nil
		}
	}

	requester, err := s.Users.GetUserByUsername(ctx, sampleDonors[0].Username)
	if err != nil {
		return err
	}

	now := s.Now()
	if _, err := s.Requests.CreateRequest(ctx, entities.BloodRequest{
		RequesterID:     requester.ID,
		PatientName:     samplePatientName,
		BloodGroup:      "A+",
		UnitsRequired:   2,
		Urgency:         domain.UrgencyHigh,
		HospitalName:    "Dhaka Medical College Hospital",
		HospitalAddress: "Shahbagh, Dhaka",
		City:            "Dhaka",
		ContactNumber:   "01712345684",
		Reason:          "Emergency surgery required",
		Status:          domain.RequestStatusPending,
		RequestedDate:   now,
		RequiredByDate:  now.UTC().Truncate(24*time.Hour).AddDate(0, 0, 2),
	}); err != nil {
		return err
	}
	s.Log.Info("created sample blood request")
	return nil
}

func (s *Seeder) createUser(ctx context.Context, u entities.User, password string) (entities.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.HashCost)
	if err != nil {
		return entities.User{}, err
	}
	u.PasswordHash = string(hash)
	return s.Users.CreateUser(ctx, u)
}
