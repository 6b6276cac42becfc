package badger

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/messbook/internal/models"
)

// Records are the JSON shapes stored as values. Decimals encode as strings.

type messRecord struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	CreatedBy string `json:"created_by"`
	CreatedAt int64  `json:"created_at"`
}

type memberRecord struct {
	MessID   string `json:"mess_id"`
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joined_at"`
}

type mealRecord struct {
	ID        string          `json:"id"`
	MessID    string          `json:"mess_id"`
	UserID    string          `json:"user_id"`
	Date      models.Date     `json:"date"`
	Breakfast decimal.Decimal `json:"breakfast"`
	Lunch     decimal.Decimal `json:"lunch"`
	Dinner    decimal.Decimal `json:"dinner"`
	CreatedBy string          `json:"created_by"`
}

type depositRecord struct {
	ID        string          `json:"id"`
	MessID    string          `json:"mess_id"`
	UserID    string          `json:"user_id"`
	Date      models.Date     `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Details   string          `json:"details,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt int64           `json:"created_at"`
}

type costRecord struct {
	ID        string          `json:"id"`
	MessID    string          `json:"mess_id"`
	ShopperID string          `json:"shopper_id"`
	Date      models.Date     `json:"date"`
	Amount    decimal.Decimal `json:"amount"`
	Details   string          `json:"details,omitempty"`
	CreatedBy string          `json:"created_by"`
	CreatedAt int64           `json:"created_at"`
}

func fromMess(m models.Mess) messRecord {
	return messRecord{ID: m.ID, Name: m.Name, Code: m.Code, CreatedBy: m.CreatedBy, CreatedAt: m.CreatedAt}
}

func (r messRecord) toModel() *models.Mess {
	return &models.Mess{ID: r.ID, Name: r.Name, Code: r.Code, CreatedBy: r.CreatedBy, CreatedAt: r.CreatedAt}
}

func fromMember(m models.Member) memberRecord {
	return memberRecord{MessID: m.MessID, UserID: m.UserID, Role: string(m.Role), JoinedAt: m.JoinedAt}
}

func (r memberRecord) toModel() models.Member {
	return models.Member{MessID: r.MessID, UserID: r.UserID, Role: models.Role(r.Role), JoinedAt: r.JoinedAt}
}

func fromMeal(m models.MealEntry) mealRecord {
	return mealRecord{
		ID: m.ID, MessID: m.MessID, UserID: m.UserID, Date: m.Date,
		Breakfast: m.Breakfast, Lunch: m.Lunch, Dinner: m.Dinner, CreatedBy: m.CreatedBy,
	}
}

func (r mealRecord) toModel() models.MealEntry {
	return models.MealEntry{
		ID: r.ID, MessID: r.MessID, UserID: r.UserID, Date: r.Date,
		Breakfast: r.Breakfast, Lunch: r.Lunch, Dinner: r.Dinner, CreatedBy: r.CreatedBy,
	}
}

func fromDeposit(d models.DepositEntry) depositRecord {
	return depositRecord{
		ID: d.ID, MessID: d.MessID, UserID: d.UserID, Date: d.Date, Amount: d.Amount,
		Details: d.Details, CreatedBy: d.CreatedBy, CreatedAt: d.CreatedAt,
	}
}

func (r depositRecord) toModel() models.DepositEntry {
	return models.DepositEntry{
		ID: r.ID, MessID: r.MessID, UserID: r.UserID, Date: r.Date, Amount: r.Amount,
		Details: r.Details, CreatedBy: r.CreatedBy, CreatedAt: r.CreatedAt,
	}
}

func fromCost(c models.CostEntry) costRecord {
	return costRecord{
		ID: c.ID, MessID: c.MessID, ShopperID: c.ShopperID, Date: c.Date, Amount: c.Amount,
		Details: c.Details, CreatedBy: c.CreatedBy, CreatedAt: c.CreatedAt,
	}
}

func (r costRecord) toModel() models.CostEntry {
	return models.CostEntry{
		ID: r.ID, MessID: r.MessID, ShopperID: r.ShopperID, Date: r.Date, Amount: r.Amount,
		Details: r.Details, CreatedBy: r.CreatedBy, CreatedAt: r.CreatedAt,
	}
}
