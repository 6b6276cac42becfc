// Package api holds the wire messages of the messbook.v1 services.
//
// Money and meal units travel as decimal strings with two fractional digits
// ("12.50"); dates as "YYYY-MM-DD".
package api

type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type Member struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joinedAt"`
}

type Mess struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Code      string   `json:"code"`
	CreatedBy string   `json:"createdBy"`
	CreatedAt int64    `json:"createdAt"`
	Members   []Member `json:"members,omitempty"`
}

// MessService

type CreateMessRequest struct {
	Name string `json:"name"`
}

type CreateMessResponse struct {
	Mess *Mess `json:"mess"`
}

type JoinMessRequest struct {
	Code string `json:"code"`
}

type JoinMessResponse struct {
	Mess *Mess `json:"mess"`
}

type GetCurrentMessRequest struct{}

type GetCurrentMessResponse struct {
	Mess *Mess  `json:"mess"`
	Role string `json:"role"`
}

type RemoveMemberRequest struct {
	UserID string `json:"userId"`
}

type RemoveMemberResponse struct{}

// LedgerService

type MealEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Breakfast string `json:"breakfast"`
	Lunch     string `json:"lunch"`
	Dinner    string `json:"dinner"`
	CreatedBy string `json:"createdBy,omitempty"`
}

// MealInput is one member's counts for the date of an UpsertMealsRequest.
// Empty counts mean zero.
type MealInput struct {
	UserID    string `json:"userId"`
	Breakfast string `json:"breakfast,omitempty"`
	Lunch     string `json:"lunch,omitempty"`
	Dinner    string `json:"dinner,omitempty"`
}

type UpsertMealsRequest struct {
	Date    string      `json:"date"`
	Entries []MealInput `json:"entries"`
}

// UpsertMealsResponse carries each entry's unit total, in request order.
type UpsertMealsResponse struct {
	Units []string `json:"units"`
}

type DepositEntry struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Date      string `json:"date"`
	Amount    string `json:"amount"`
	Details   string `json:"details,omitempty"`
	CreatedBy string `json:"createdBy,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

type AppendDepositRequest struct {
	// UserID defaults to the caller.
	UserID  string `json:"userId,omitempty"`
	Date    string `json:"date"`
	Amount  string `json:"amount"`
	Details string `json:"details,omitempty"`
}

type AppendDepositResponse struct {
	ID string `json:"id"`
}

type CostEntry struct {
	ID        string `json:"id"`
	ShopperID string `json:"shopperId"`
	Date      string `json:"date"`
	Amount    string `json:"amount"`
	Details   string `json:"details,omitempty"`
	CreatedBy string `json:"createdBy,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

type AppendCostRequest struct {
	// ShopperID defaults to the caller.
	ShopperID string `json:"shopperId,omitempty"`
	Date      string `json:"date"`
	Amount    string `json:"amount"`
	Details   string `json:"details,omitempty"`
}

type AppendCostResponse struct {
	ID string `json:"id"`
}

type ListMealsRequest struct {
	Period Period `json:"period"`
}

type ListMealsResponse struct {
	Entries []MealEntry `json:"entries"`
}

type ListDepositsRequest struct {
	Period Period `json:"period"`
}

type ListDepositsResponse struct {
	Entries []DepositEntry `json:"entries"`
}

type ListCostsRequest struct {
	Period Period `json:"period"`
}

type ListCostsResponse struct {
	Entries []CostEntry `json:"entries"`
}

// SettlementService

type MemberSettlement struct {
	Units    string `json:"units"`
	Deposits string `json:"deposits"`
	Cost     string `json:"cost"`
	Balance  string `json:"balance"`
}

type Settlement struct {
	Period         Period                      `json:"period"`
	TotalMealUnits string                      `json:"totalMealUnits"`
	TotalCost      string                      `json:"totalCost"`
	TotalDeposits  string                      `json:"totalDeposits"`
	MealRate       string                      `json:"mealRate"`
	MessBalance    string                      `json:"messBalance"`
	PerMember      map[string]MemberSettlement `json:"perMember"`
}

type ComputeSettlementRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ComputeSettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}

// GetMonthlySettlementRequest names a calendar month as "YYYY-MM".
type GetMonthlySettlementRequest struct {
	Month string `json:"month"`
}

type GetMonthlySettlementResponse struct {
	Settlement *Settlement `json:"settlement"`
}
