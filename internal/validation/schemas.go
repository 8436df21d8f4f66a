package validation

import (
	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"fullName" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=LANDLORD TENANT VENDOR"`
	Phone    string `json:"phone"`
	Country  string `json:"country" validate:"omitempty,len=2"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateMaintenanceRequest struct {
	Description            string   `json:"description"`
	ScheduleDate           string   `json:"scheduleDate" validate:"required,isodate"`
	Offer                  []string `json:"offer" validate:"required,dive,required"`
	PropertyID             string   `json:"propertyId"`
	ApartmentID            string   `json:"apartmentId"`
	VendorID               string   `json:"vendorId"`
	CategoryID             string   `json:"categoryId" validate:"required"`
	SubcategoryIDs         []string `json:"subcategoryIds" validate:"required,min=1,dive,required"`
	CloudinaryURLs         []string `json:"cloudinaryUrls" validate:"omitempty,dive,url"`
	CloudinaryVideoURLs    []string `json:"cloudinaryVideoUrls" validate:"omitempty,dive,url"`
	CloudinaryDocumentURLs []string `json:"cloudinaryDocumentUrls" validate:"omitempty,dive,url"`
	ServiceID              string   `json:"serviceId" validate:"required"`
}

type UpdateMaintenanceRequest struct {
	Description    *string  `json:"description"`
	ScheduleDate   *string  `json:"scheduleDate" validate:"omitempty,isodate"`
	Offer          []string `json:"offer" validate:"omitempty,dive,required"`
	ApartmentID    *string  `json:"apartmentId"`
	SubcategoryIDs []string `json:"subcategoryIds" validate:"omitempty,min=1,dive,required"`
}

type CheckWhitelistRequest struct {
	PropertyID     string   `json:"propertyId"`
	ApartmentID    string   `json:"apartmentId"`
	CategoryID     string   `json:"categoryId" validate:"required"`
	SubcategoryIDs []string `json:"subcategoryIds" validate:"omitempty,dive,required"`
}

type CreateWhitelistRequest struct {
	CategoryID    string `json:"categoryId" validate:"required"`
	SubcategoryID string `json:"subcategoryId"`
	PropertyID    string `json:"propertyId"`
	ApartmentID   string `json:"apartmentId"`
}

type RescheduleRequest struct {
	NewScheduleDate string `json:"newScheduleDate" validate:"required,isodate"`
}

type DecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
}

type PayMaintenanceRequest struct {
	Amount     decimal.Decimal `json:"amount" validate:"required,gt=0"`
	ReceiverID string          `json:"receiverId" validate:"required"`
}

type ChatMessageRequest struct {
	ReceiverID string `json:"receiverId" validate:"required"`
	Message    string `json:"message" validate:"required"`
}

type SubCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=128"`
	CategoryID  string `json:"categoryId" validate:"required"`
	Description string `json:"description"`
}

type UpdateSubCategoryRequest struct {
	Name        *string `json:"name" validate:"omitnil,min=1,max=128"`
	CategoryID  *string `json:"categoryId" validate:"omitnil,min=1"`
	Description *string `json:"description"`
}

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=128"`
	Description string `json:"description"`
}

type ServiceRequest struct {
	CategoryID    string          `json:"categoryId" validate:"required"`
	SubcategoryID string          `json:"subcategoryId"`
	Name          string          `json:"name" validate:"required"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price" validate:"gte=0"`
}

type PropertyRequest struct {
	Name        string `form:"name" validate:"required"`
	Address     string `form:"address"`
	City        string `form:"city"`
	Country     string `form:"country" validate:"omitempty,len=2"`
	Description string `form:"description"`
}

type ApartmentRequest struct {
	Name       string          `json:"name" validate:"required"`
	Rooms      int             `json:"rooms" validate:"gte=0"`
	RentAmount decimal.Decimal `json:"rentAmount" validate:"gte=0"`
}

type SettingRequest struct {
	PropertyID        string          `json:"propertyId"`
	LateFeePercentage decimal.Decimal `json:"lateFeePercentage" validate:"gte=0,lte=100"`
	GracePeriodDays   int             `json:"gracePeriodDays" validate:"gte=0"`
	RentDueDay        int             `json:"rentDueDay" validate:"required,min=1,max=31"`
	SecurityDeposit   decimal.Decimal `json:"securityDeposit" validate:"gte=0"`
}

type UpdateSettingRequest struct {
	LateFeePercentage *decimal.Decimal `json:"lateFeePercentage" validate:"omitempty,gte=0,lte=100"`
	GracePeriodDays   *int             `json:"gracePeriodDays" validate:"omitempty,gte=0"`
	RentDueDay        *int             `json:"rentDueDay" validate:"omitempty,min=1,max=31"`
	SecurityDeposit   *decimal.Decimal `json:"securityDeposit" validate:"omitempty,gte=0"`
}

type ProfileRequest struct {
	FullName string `form:"fullName" validate:"omitempty,max=255"`
	Phone    string `form:"phone" validate:"omitempty,max=32"`
	Bio      string `form:"bio"`
}

type PaymentLinkRequest struct {
	PayeeID     string          `json:"payeeId" validate:"required"`
	Amount      decimal.Decimal `json:"amount" validate:"required,gt=0"`
	Currency    string          `json:"currency" validate:"omitempty,len=3"`
	Description string          `json:"description"`
	PropertyID  string          `json:"propertyId"`
}

type BudgetRequest struct {
	PropertyID      string          `json:"propertyId" validate:"required"`
	TransactionType string          `json:"transactionType" validate:"required,oneof=MAINTENANCE_FEE BILL_PAYMENT LATE_FEE CHARGES RENT_PAYMENT"`
	BudgetAmount    decimal.Decimal `json:"budgetAmount" validate:"required,gt=0"`
	Frequency       string          `json:"frequency" validate:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	AlertThreshold  float64         `json:"alertThreshold" validate:"omitempty,gt=0,lte=1"`
}

type BudgetUpdateRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// FundWalletQuery is read from the query string.
type FundWalletQuery struct {
	Amount   string `form:"amount" validate:"required,numeric"`
	Currency string `form:"currency" validate:"omitempty,len=3"`
}

type WebhookRequest struct {
	Reference string `json:"reference" validate:"required"`
	Status    string `json:"status" validate:"required"`
}
