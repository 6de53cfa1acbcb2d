package main

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"crm-backend/internal/auth"
	"crm-backend/internal/config"
	"crm-backend/internal/database"
	"crm-backend/internal/database/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type OrganizationData struct {
	Name string `yaml:"name"`
}

type UserData struct {
	Email       string `yaml:"email"`
	Password    string `yaml:"password"`
	FirstName   string `yaml:"first_name"`
	LastName    string `yaml:"last_name"`
	IsActive    bool   `yaml:"is_active"`
	IsSuperuser bool   `yaml:"is_superuser"`
}

type ProfileData struct {
	UserEmail           string `yaml:"user_email"`
	OrganizationName    string `yaml:"organization_name"`
	Role                string `yaml:"role"`
	Phone               string `yaml:"phone,omitempty"`
	IsOrganizationAdmin bool   `yaml:"is_organization_admin"`
	HasSalesAccess      bool   `yaml:"has_sales_access"`
	HasMarketingAccess  bool   `yaml:"has_marketing_access"`
}

type TeamData struct {
	Name             string   `yaml:"name"`
	OrganizationName string   `yaml:"organization_name"`
	Description      string   `yaml:"description,omitempty"`
	MemberEmails     []string `yaml:"member_emails,omitempty"`
}

type AccountData struct {
	Name             string   `yaml:"name"`
	OrganizationName string   `yaml:"organization_name"`
	CreatedByEmail   string   `yaml:"created_by_email"`
	Email            string   `yaml:"email,omitempty"`
	Phone            string   `yaml:"phone,omitempty"`
	Industry         string   `yaml:"industry,omitempty"`
	Website          string   `yaml:"website,omitempty"`
	Status           string   `yaml:"status,omitempty"`
	BillingCity      string   `yaml:"billing_city,omitempty"`
	Description      string   `yaml:"description,omitempty"`
	AssignedEmails   []string `yaml:"assigned_emails,omitempty"`
	TeamNames        []string `yaml:"team_names,omitempty"`
}

type ContactData struct {
	FirstName        string `yaml:"first_name"`
	LastName         string `yaml:"last_name"`
	OrganizationName string `yaml:"organization_name"`
	CreatedByEmail   string `yaml:"created_by_email"`
	Email            string `yaml:"email,omitempty"`
	Mobile           string `yaml:"mobile,omitempty"`
	City             string `yaml:"city,omitempty"`
	Description      string `yaml:"description,omitempty"`
}

// File structures
type OrganizationsFile struct {
	Organizations []OrganizationData `yaml:"organizations"`
}

type UsersFile struct {
	Users []UserData `yaml:"users"`
}

type ProfilesFile struct {
	Profiles []ProfileData `yaml:"profiles"`
}

type TeamsFile struct {
	Teams []TeamData `yaml:"teams"`
}

type AccountsFile struct {
	Accounts []AccountData `yaml:"accounts"`
}

type ContactsFile struct {
	Contacts []ContactData `yaml:"contacts"`
}

func main() {
	log.Println("🚀 Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Load data from YAML files
	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("✅ Initial data loaded successfully!")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	opts := &database.Options{
		LogLevel: logger.Silent, // Suppress SQL and "record not found" noise while seeding
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	organizations, err := loadYAMLSlice(dataDir, "organizations", func(f *OrganizationsFile) []OrganizationData { return f.Organizations })
	if err != nil {
		return fmt.Errorf("failed to load organizations: %w", err)
	}

	users, err := loadYAMLSlice(dataDir, "users", func(f *UsersFile) []UserData { return f.Users })
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}

	profiles, err := loadYAMLSlice(dataDir, "profiles", func(f *ProfilesFile) []ProfileData { return f.Profiles })
	if err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	teams, err := loadYAMLSlice(dataDir, "teams", func(f *TeamsFile) []TeamData { return f.Teams })
	if err != nil {
		return fmt.Errorf("failed to load teams: %w", err)
	}

	accounts, err := loadYAMLSlice(dataDir, "accounts", func(f *AccountsFile) []AccountData { return f.Accounts })
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}

	contacts, err := loadYAMLSlice(dataDir, "contacts", func(f *ContactsFile) []ContactData { return f.Contacts })
	if err != nil {
		return fmt.Errorf("failed to load contacts: %w", err)
	}

	// Create organizations first
	orgMap := make(map[string]*models.Organization)
	orgCreated := 0
	for _, orgData := range organizations {
		org, created, err := createOrganization(db, orgData)
		if err != nil {
			return fmt.Errorf("failed to create organization %s: %w", orgData.Name, err)
		}
		orgMap[orgData.Name] = org
		if created {
			orgCreated++
		}
	}
	log.Printf("📋 Organizations: %d created, %d total", orgCreated, len(organizations))

	// Create users
	userMap := make(map[string]*models.User)
	userCreated := 0
	for _, userData := range users {
		user, created, err := createUser(db, userData)
		if err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.Email, err)
		}
		userMap[userData.Email] = user
		if created {
			userCreated++
		}
	}
	log.Printf("📋 Users: %d created, %d total", userCreated, len(users))

	// Create profiles binding users into organizations
	profileMap := make(map[string]*models.Profile)
	profileCreated := 0
	for _, profileData := range profiles {
		profile, created, err := createProfile(db, profileData, orgMap, userMap)
		if err != nil {
			return fmt.Errorf("failed to create profile %s in %s: %w", profileData.UserEmail, profileData.OrganizationName, err)
		}
		profileMap[profileKey(profileData.UserEmail, profileData.OrganizationName)] = profile
		if created {
			profileCreated++
		}
	}
	log.Printf("📋 Profiles: %d created, %d total", profileCreated, len(profiles))

	// Create teams
	teamMap := make(map[string]*models.Team)
	teamCreated := 0
	for _, teamData := range teams {
		team, created, err := createTeam(db, teamData, orgMap, profileMap)
		if err != nil {
			return fmt.Errorf("failed to create team %s: %w", teamData.Name, err)
		}
		teamMap[teamData.Name] = team
		if created {
			teamCreated++
		}
	}
	log.Printf("📋 Teams: %d created, %d total", teamCreated, len(teams))

	// Create accounts
	accountCreated := 0
	for _, accountData := range accounts {
		_, created, err := createAccount(db, accountData, orgMap, profileMap, teamMap)
		if err != nil {
			log.Printf("⚠️  Warning: failed to create account %s: %v", accountData.Name, err)
			continue
		}
		if created {
			accountCreated++
		}
	}
	log.Printf("📋 Accounts: %d created, %d total", accountCreated, len(accounts))

	// Create contacts
	contactCreated := 0
	for _, contactData := range contacts {
		_, created, err := createContact(db, contactData, orgMap, profileMap)
		if err != nil {
			log.Printf("⚠️  Warning: failed to create contact %s %s: %v", contactData.FirstName, contactData.LastName, err)
			continue
		}
		if created {
			contactCreated++
		}
	}
	log.Printf("📋 Contacts: %d created, %d total", contactCreated, len(contacts))

	return nil
}

// loadYAMLSlice collects entries of one kind from every YAML file in the
// data directory whose name contains the given marker.
func loadYAMLSlice[F any, T any](dataDir, marker string, extract func(*F) []T) ([]T, error) {
	var all []T

	err := filepath.WalkDir(dataDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".yaml") && strings.Contains(path, marker) {
			var file F
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			if err := yaml.Unmarshal(data, &file); err != nil {
				return err
			}

			all = append(all, extract(&file)...)
		}
		return nil
	})

	return all, err
}

func profileKey(email, orgName string) string {
	return email + "@" + orgName
}

func createOrganization(db *gorm.DB, data OrganizationData) (*models.Organization, bool, error) {
	var existing models.Organization
	err := db.Where("name = ?", data.Name).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	apiKey, err := auth.GenerateAPIKey()
	if err != nil {
		return nil, false, err
	}

	org := models.Organization{
		Name:     data.Name,
		APIKey:   apiKey,
		IsActive: true,
	}
	if err := db.Create(&org).Error; err != nil {
		return nil, false, err
	}
	return &org, true, nil
}

func createUser(db *gorm.DB, data UserData) (*models.User, bool, error) {
	var existing models.User
	err := db.Where("email = ?", data.Email).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, err
	}

	user := models.User{
		Email:        data.Email,
		PasswordHash: string(hash),
		FirstName:    data.FirstName,
		LastName:     data.LastName,
		IsActive:     data.IsActive,
		IsSuperuser:  data.IsSuperuser,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, false, err
	}
	return &user, true, nil
}

func createProfile(db *gorm.DB, data ProfileData, orgMap map[string]*models.Organization, userMap map[string]*models.User) (*models.Profile, bool, error) {
	org, ok := orgMap[data.OrganizationName]
	if !ok {
		return nil, false, fmt.Errorf("unknown organization %q", data.OrganizationName)
	}
	user, ok := userMap[data.UserEmail]
	if !ok {
		return nil, false, fmt.Errorf("unknown user %q", data.UserEmail)
	}

	var existing models.Profile
	err := db.Where("user_id = ? AND organization_id = ?", user.ID, org.ID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	role := models.ProfileRole(data.Role)
	if role == "" {
		role = models.ProfileRoleUser
	}

	profile := models.Profile{
		UserID:              user.ID,
		OrganizationID:      org.ID,
		Role:                role,
		Phone:               data.Phone,
		IsOrganizationAdmin: data.IsOrganizationAdmin,
		HasSalesAccess:      data.HasSalesAccess,
		HasMarketingAccess:  data.HasMarketingAccess,
		IsActive:            true,
	}
	if err := db.Create(&profile).Error; err != nil {
		return nil, false, err
	}
	return &profile, true, nil
}

func createTeam(db *gorm.DB, data TeamData, orgMap map[string]*models.Organization, profileMap map[string]*models.Profile) (*models.Team, bool, error) {
	org, ok := orgMap[data.OrganizationName]
	if !ok {
		return nil, false, fmt.Errorf("unknown organization %q", data.OrganizationName)
	}

	var existing models.Team
	err := db.Where("name = ? AND organization_id = ?", data.Name, org.ID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	team := models.Team{
		TenantModel: models.TenantModel{OrganizationID: org.ID},
		Name:        data.Name,
		Description: data.Description,
	}
	for _, email := range data.MemberEmails {
		member, ok := profileMap[profileKey(email, data.OrganizationName)]
		if !ok {
			return nil, false, fmt.Errorf("unknown member %q", email)
		}
		team.Users = append(team.Users, *member)
	}
	if err := db.Create(&team).Error; err != nil {
		return nil, false, err
	}
	return &team, true, nil
}

func createAccount(db *gorm.DB, data AccountData, orgMap map[string]*models.Organization, profileMap map[string]*models.Profile, teamMap map[string]*models.Team) (*models.Account, bool, error) {
	org, ok := orgMap[data.OrganizationName]
	if !ok {
		return nil, false, fmt.Errorf("unknown organization %q", data.OrganizationName)
	}
	creator, ok := profileMap[profileKey(data.CreatedByEmail, data.OrganizationName)]
	if !ok {
		return nil, false, fmt.Errorf("unknown creator %q", data.CreatedByEmail)
	}

	var existing models.Account
	err := db.Where("name = ? AND organization_id = ?", data.Name, org.ID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	status := models.AccountStatus(data.Status)
	if status == "" {
		status = models.AccountStatusOpen
	}

	account := models.Account{
		TenantModel: models.TenantModel{
			OrganizationID: org.ID,
			CreatedByID:    &creator.ID,
		},
		Name:        data.Name,
		Email:       data.Email,
		Phone:       data.Phone,
		Industry:    data.Industry,
		Website:     data.Website,
		Status:      status,
		BillingCity: data.BillingCity,
		Description: data.Description,
	}
	for _, email := range data.AssignedEmails {
		assignee, ok := profileMap[profileKey(email, data.OrganizationName)]
		if !ok {
			return nil, false, fmt.Errorf("unknown assignee %q", email)
		}
		account.AssignedTo = append(account.AssignedTo, *assignee)
	}
	for _, teamName := range data.TeamNames {
		team, ok := teamMap[teamName]
		if !ok {
			return nil, false, fmt.Errorf("unknown team %q", teamName)
		}
		account.Teams = append(account.Teams, *team)
	}
	if err := db.Create(&account).Error; err != nil {
		return nil, false, err
	}
	return &account, true, nil
}

func createContact(db *gorm.DB, data ContactData, orgMap map[string]*models.Organization, profileMap map[string]*models.Profile) (*models.Contact, bool, error) {
	org, ok := orgMap[data.OrganizationName]
	if !ok {
		return nil, false, fmt.Errorf("unknown organization %q", data.OrganizationName)
	}
	creator, ok := profileMap[profileKey(data.CreatedByEmail, data.OrganizationName)]
	if !ok {
		return nil, false, fmt.Errorf("unknown creator %q", data.CreatedByEmail)
	}

	var existing models.Contact
	err := db.Where("first_name = ? AND last_name = ? AND organization_id = ?", data.FirstName, data.LastName, org.ID).First(&existing).Error
	if err == nil {
		return &existing, false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, false, err
	}

	contact := models.Contact{
		TenantModel: models.TenantModel{
			OrganizationID: org.ID,
			CreatedByID:    &creator.ID,
		},
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		Email:       data.Email,
		Mobile:      data.Mobile,
		City:        data.City,
		Description: data.Description,
	}
	if err := db.Create(&contact).Error; err != nil {
		return nil, false, err
	}
	return &contact, true, nil
}
