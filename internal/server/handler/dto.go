package handler

// LoginRequest represents a credential check request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse represents the resolved role for a credential check
type LoginResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// CreateCustomerRequest represents a request to register a new customer
type CreateCustomerRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	AddressLine string `json:"address_line" binding:"required"`
}

// OpenAccountRequest represents a request to open an account for an
// existing customer. Amounts travel as strings so the handler controls
// decimal parsing.
type OpenAccountRequest struct {
	Type                string `json:"type" binding:"required"`
	Balance             string `json:"balance" binding:"required"`
	InterestRatePercent string `json:"interest_rate_percent" binding:"required"`
}

// TransactionRequest represents a deposit or withdrawal against one account
type TransactionRequest struct {
	Type        string `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL"`
	AccountType string `json:"account_type" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
}

// TransferRequest represents a transfer between the default accounts of
// two customers
type TransferRequest struct {
	FromUser string `json:"from_user" binding:"required"`
	ToUser   string `json:"to_user" binding:"required"`
	Amount   string `json:"amount" binding:"required"`
}

// ConfirmationResponse represents a committed mutating operation
type ConfirmationResponse struct {
	Message     string `json:"message"`
	CommittedAt string `json:"committed_at"`
}

// BatchOperation is one operation inside a batch request
type BatchOperation struct {
	Type        string `json:"type" binding:"required,oneof=DEPOSIT WITHDRAWAL TRANSFER"`
	Username    string `json:"username,omitempty"`
	AccountType string `json:"account_type,omitempty"`
	FromUser    string `json:"from_user,omitempty"`
	ToUser      string `json:"to_user,omitempty"`
	Amount      string `json:"amount" binding:"required"`
}

// BatchRequest represents a batch of operations to run concurrently
type BatchRequest struct {
	Operations []BatchOperation `json:"operations" binding:"required,min=1,dive"`
}

// BatchOperationResult reports the outcome of one batch operation
type BatchOperationResult struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
	CommittedAt string `json:"committed_at,omitempty"`
	Error       string `json:"error,omitempty"`
}

// BatchResponse represents the outcomes of a batch, in request order
type BatchResponse struct {
	Results []BatchOperationResult `json:"results"`
}
