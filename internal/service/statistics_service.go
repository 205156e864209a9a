package service

import (
	"context"
	"time"

	"ezakat/internal/model"

	"gorm.io/gorm"
)

// --- DTOs ---

type CategoryTotal struct {
	Category string  `json:"category"`
	Count    int64   `json:"count"`
	Total    float64 `json:"total"`
}

type BranchTotal struct {
	BranchID   string  `json:"branch_id"`
	BranchName string  `json:"branch_name"`
	Count      int64   `json:"count"`
	Total      float64 `json:"total"`
}

type ChannelTotal struct {
	Channel string  `json:"channel"`
	Count   int64   `json:"count"`
	Total   float64 `json:"total"`
}

type AmilRanking struct {
	AmilID    string  `json:"amil_id"`
	AmilName  string  `json:"amil_name"`
	Count     int64   `json:"count"`
	Collected float64 `json:"collected"`
}

type StatisticsResponse struct {
	TimeRangeStartDate time.Time       `json:"time_range_start_date"`
	TimeRangeEndDate   time.Time       `json:"time_range_end_date"`
	TotalCollected     float64         `json:"total_collected"`
	TotalPayments      int64           `json:"total_payments"`
	WajibCalculations  int64           `json:"wajib_calculations"`
	TotalCalculations  int64           `json:"total_calculations"`
	ByCategory         []CategoryTotal `json:"by_category"`
	ByBranch           []BranchTotal   `json:"by_branch"`
	ByChannel          []ChannelTotal  `json:"by_channel"`
	TopAmils           []AmilRanking   `json:"top_amils"`
}

// --- Interface ---

type StatisticsService interface {
	GetStatistics(ctx context.Context, startDate, endDate time.Time) (StatisticsResponse, error)
}

type statisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// GetStatistics aggregates completed collections into dashboard metrics
// over the given time bracket
func (s *statisticsService) GetStatistics(ctx context.Context, startDate, endDate time.Time) (StatisticsResponse, error) {
	var response StatisticsResponse
	response.TimeRangeStartDate = startDate
	response.TimeRangeEndDate = endDate

	completed := func() *gorm.DB {
		return s.db.WithContext(ctx).Table("payments").
			Where("payments.status = ? AND payments.paid_at >= ? AND payments.paid_at <= ?",
				model.PaymentCompleted, startDate, endDate)
	}

	// Total collected
	var totals struct {
		Total float64
		Count int64
	}
	completed().Select("COALESCE(SUM(payments.amount), 0) as total, COUNT(*) as count").Scan(&totals)
	response.TotalCollected = totals.Total
	response.TotalPayments = totals.Count

	// Calculation volumes
	s.db.WithContext(ctx).Model(&model.ZakatCalculation{}).
		Where("created_at >= ? AND created_at <= ?", startDate, endDate).
		Count(&response.TotalCalculations)
	s.db.WithContext(ctx).Model(&model.ZakatCalculation{}).
		Where("status = ? AND created_at >= ? AND created_at <= ?", model.StatusWajib, startDate, endDate).
		Count(&response.WajibCalculations)

	// Collections by zakat category
	var byCategory []CategoryTotal
	completed().
		Select("zakat_calculations.category as category, COUNT(*) as count, SUM(payments.amount) as total").
		Joins("JOIN zakat_calculations ON zakat_calculations.id = payments.calculation_id").
		Group("zakat_calculations.category").
		Order("total DESC").
		Scan(&byCategory)
	response.ByCategory = byCategory

	// Collections by branch (counter channel only)
	var byBranch []BranchTotal
	completed().
		Select("branches.id as branch_id, branches.name as branch_name, COUNT(*) as count, SUM(payments.amount) as total").
		Joins("JOIN branches ON branches.id = payments.branch_id").
		Group("branches.id, branches.name").
		Order("total DESC").
		Scan(&byBranch)
	response.ByBranch = byBranch

	// Collections by channel
	var byChannel []ChannelTotal
	completed().
		Select("payments.channel as channel, COUNT(*) as count, SUM(payments.amount) as total").
		Group("payments.channel").
		Order("total DESC").
		Scan(&byChannel)
	response.ByChannel = byChannel

	// Top collecting amils
	var topAmils []AmilRanking
	completed().
		Select("users.id as amil_id, users.username as amil_name, COUNT(*) as count, SUM(payments.amount) as collected").
		Joins("JOIN users ON users.id = payments.amil_id").
		Group("users.id, users.username").
		Order("collected DESC").
		Limit(5).
		Scan(&topAmils)
	response.TopAmils = topAmils

	return response, nil
}
