package domain

const (
	RoleLandlord = "LANDLORD"
	RoleTenant   = "TENANT"
	RoleVendor   = "VENDOR"
	RoleAdmin    = "ADMIN"
)

// SelfServiceRoles are the roles a user may pick at registration.
var SelfServiceRoles = []string{RoleLandlord, RoleTenant, RoleVendor}

const (
	PaymentStatusPending   = "PENDING"
	PaymentStatusCompleted = "COMPLETED"
)

const (
	DecisionPending  = "PENDING"
	DecisionApproved = "APPROVED"
	DecisionRejected = "REJECTED"
)

// DefaultRescheduleMax is how many times a maintenance request may be rescheduled.
const DefaultRescheduleMax = 3

const (
	TransactionDebit  = "DEBIT"
	TransactionCredit = "CREDIT"
)

const (
	TransactionStatusPending   = "PENDING"
	TransactionStatusCompleted = "COMPLETED"
	TransactionStatusFailed    = "FAILED"
)

// Transaction references (business purpose of a transaction).
const (
	RefMakePayment    = "MAKE_PAYMENT"
	RefReceivePayment = "RECEIVE_PAYMENT"
	RefFundWallet     = "FUND_WALLET"
	RefRentPayment    = "RENT_PAYMENT"
	RefLateFee        = "LATE_FEE"
	RefCharges        = "CHARGES"
	RefMaintenanceFee = "MAINTENANCE_FEE"
	RefBillPayment    = "BILL_PAYMENT"
	RefTransfer       = "TRANSFER"
)

// RevenueReferences are counted as revenue on the CREDIT side of a monthly analysis.
var RevenueReferences = []string{RefRentPayment, RefLateFee, RefCharges, RefMaintenanceFee}

// ExpenseReferences are counted as expenses on the DEBIT side of a monthly analysis.
var ExpenseReferences = []string{RefMaintenanceFee, RefBillPayment, RefLateFee, RefCharges}

// IncomeReferences are the references listed as landlord income.
var IncomeReferences = []string{RefRentPayment, RefLateFee, RefCharges, RefReceivePayment}

const (
	GatewayStripe      = "STRIPE"
	GatewayPaystack    = "PAYSTACK"
	GatewayFlutterwave = "FLUTTERWAVE"
	GatewayStub        = "STUB"
	GatewayWallet      = "WALLET"
)

const (
	FrequencyDaily   = "DAILY"
	FrequencyWeekly  = "WEEKLY"
	FrequencyMonthly = "MONTHLY"
	FrequencyYearly  = "YEARLY"
)

const (
	AlertNone    = ""
	AlertWarning = "warning"
	AlertReached = "reached"
)

// DefaultAlertThreshold is the fraction of a budget at which a warning is raised.
const DefaultAlertThreshold = 0.8

const (
	ChatTypeMaintenance = "MAINTENANCE"
	ChatTypeDirect      = "DIRECT"
)

const (
	NotificationBudgetAlert      = "BUDGET_ALERT"
	NotificationMaintenance      = "MAINTENANCE"
	NotificationPaymentCompleted = "PAYMENT_COMPLETED"
)

const MaxProfileImages = 5
