package account

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/chambapp/backend_chamba/internal/models"
	"github.com/chambapp/backend_chamba/internal/utils"
)

// dummyHash keeps login timing comparable when the email does not exist.
const dummyHash = "$2a$10$CwTycUXWue0Thq9StjUM0uJ8yQbWc1x9uxw2sQ2sXUNx5x9xJ9F2S"

type Service struct {
	DB     *gorm.DB
	Mailer Mailer
}

func NewService(db *gorm.DB, mailer Mailer) *Service {
	return &Service{DB: db, Mailer: mailer}
}

type RegisterClientInput struct {
	Name      string
	Surname   string
	Email     string
	Password  string
	Phone     string
	BirthDate time.Time

	Street         string
	Neighborhood   string
	ExteriorNumber string
	InteriorNumber *string
	PostalCode     string
	City           string
	Reference      *string

	Latitude  *float64
	Longitude *float64
}

type RegisterWorkerInput struct {
	Name      string
	Surname   string
	Email     string
	Password  string
	Phone     string
	BirthDate time.Time

	Bio             string
	YearsExperience int
	HourlyRate      float64
	CategoryIDs     []uint

	Latitude  *float64
	Longitude *float64
}

// RegisterClient creates an inactive user and its address profile in one
// transaction, then hands the verification code to the mailer.
func (s *Service) RegisterClient(in RegisterClientInput) (*models.User, error) {
	user, code, err := s.newUser(in.Name, in.Surname, in.Email, in.Password, in.Phone, in.BirthDate)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := createUser(tx, user); err != nil {
			return err
		}
		profile := models.ClientProfile{
			UserID:         user.ID,
			Street:         in.Street,
			Neighborhood:   in.Neighborhood,
			ExteriorNumber: in.ExteriorNumber,
			InteriorNumber: in.InteriorNumber,
			PostalCode:     in.PostalCode,
			City:           in.City,
			Reference:      in.Reference,
			Latitude:       in.Latitude,
			Longitude:      in.Longitude,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}

	s.Mailer.SendVerificationCode(user.Email, code)
	return user, nil
}

// RegisterWorker is the same transaction shape plus one WorkerCategory row per
// requested trade. Category ids are deduplicated but not validated against the
// categories table; existence is left to the store.
func (s *Service) RegisterWorker(in RegisterWorkerInput) (*models.User, error) {
	user, code, err := s.newUser(in.Name, in.Surname, in.Email, in.Password, in.Phone, in.BirthDate)
	if err != nil {
		return nil, err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := createUser(tx, user); err != nil {
			return err
		}
		profile := models.WorkerProfile{
			UserID:          user.ID,
			Bio:             in.Bio,
			YearsExperience: in.YearsExperience,
			HourlyRate:      in.HourlyRate,
			Latitude:        in.Latitude,
			Longitude:       in.Longitude,
		}
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		seen := make(map[uint]bool, len(in.CategoryIDs))
		for _, catID := range in.CategoryIDs {
			if seen[catID] {
				continue
			}
			seen[catID] = true
			wc := models.WorkerCategory{UserID: user.ID, CategoryID: catID}
			if err := tx.Create(&wc).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Mailer.SendVerificationCode(user.Email, code)
	return user, nil
}

// Verify activates the account matching email+code. Activation burns the code
// so it cannot be replayed. Verifying an already active account is a no-op and
// reports activated=false.
func (s *Service) Verify(email, code string) (activated bool, err error) {
	var user models.User
	err = s.DB.Where("email = ?", utils.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, ErrUserNotFound
	}
	if err != nil {
		return false, err
	}
	if user.Active {
		return false, nil
	}
	if user.VerificationCode == nil || *user.VerificationCode != code {
		return false, ErrInvalidCode
	}
	err = s.DB.Model(&user).Updates(map[string]interface{}{
		"active":            true,
		"verification_code": nil,
	}).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

// Login checks, in order: existence, password, activation, block expiry.
// Password is verified before account state so the state of an account is
// never disclosed to a caller who does not hold the credential. Unknown email
// and wrong password return the same error.
func (s *Service) Login(email, password string) (*models.User, error) {
	var user models.User
	err := s.DB.
		Preload("ClientProfile").
		Preload("WorkerProfile").
		Where("email = ?", utils.NormalizeEmail(email)).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// burn a compare so unknown emails cost the same as wrong passwords
		utils.CheckPassword(dummyHash, password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !utils.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrAccountInactive
	}
	if user.Blocked(time.Now()) {
		return nil, ErrAccountBlocked
	}
	return &user, nil
}

func (s *Service) newUser(name, surname, email, password, phone string, birthDate time.Time) (*models.User, string, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	code := utils.GenerateVerificationCode()
	user := models.User{
		Name:             name,
		Surname:          surname,
		Email:            utils.NormalizeEmail(email),
		PasswordHash:     hash,
		Phone:            phone,
		BirthDate:        datatypes.Date(birthDate),
		Active:           false,
		VerificationCode: &code,
	}
	return &user, code, nil
}

// createUser inserts the user row. The email unique index is the only
// constraint on users, so a duplicated-key error here is a duplicate email;
// duplicated keys from any other insert in the transaction are not.
func createUser(tx *gorm.DB, user *models.User) error {
	if err := tx.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}
