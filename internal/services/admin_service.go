// internal/services/admin_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/javajoker/petpalooza-backend/internal/models"
	"github.com/javajoker/petpalooza-backend/internal/utils"
)

type AdminService struct {
	db *gorm.DB
}

type AdminDashboardStats struct {
	TotalUsers         int64                        `json:"total_users"`
	NewUsersThisMonth  int64                        `json:"new_users_this_month"`
	TotalOrders        int64                        `json:"total_orders"`
	OrdersThisMonth    int64                        `json:"orders_this_month"`
	OrdersByStatus     map[models.OrderStatus]int64 `json:"orders_by_status"`
	PaidOrders         int64                        `json:"paid_orders"`
	TotalRevenue       decimal.Decimal              `json:"total_revenue"`
	MonthlyRevenue     decimal.Decimal              `json:"monthly_revenue"`
	ActiveProducts     int64                        `json:"active_products"`
	InactiveProducts   int64                        `json:"inactive_products"`
	OpenCarts          int64                        `json:"open_carts"`
	NewContactMessages int64                        `json:"new_contact_messages"`
	OrderGrowth        float64                      `json:"order_growth"`
}

type AdminUserFilter struct {
	utils.PaginationParams
	IsStaff *bool `json:"is_staff,omitempty"`
}

type AdminAuditFilter struct {
	utils.PaginationParams
	ResourceType string `json:"resource_type,omitempty"`
	UserID       *uint  `json:"user_id,omitempty"`
}

type UpdateUserRequest struct {
	IsStaff  *bool `json:"is_staff"`
	IsActive *bool `json:"is_active"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Dashboard Statistics
// Revenue counts every order that was not cancelled.
func (s *AdminService) GetDashboardStats(ctx context.Context) (*AdminDashboardStats, error) {
	db := s.db.WithContext(ctx)
	stats := &AdminDashboardStats{OrdersByStatus: map[models.OrderStatus]int64{}}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	counts := []struct {
		query *gorm.DB
		dest  *int64
	}{
		{db.Model(&models.User{}), &stats.TotalUsers},
		{db.Model(&models.User{}).Where("created_at >= ?", monthStart), &stats.NewUsersThisMonth},
		{db.Model(&models.Order{}), &stats.TotalOrders},
		{db.Model(&models.Order{}).Where("created_at >= ?", monthStart), &stats.OrdersThisMonth},
		{db.Model(&models.Order{}).Where("paid_at IS NOT NULL"), &stats.PaidOrders},
		{db.Model(&models.Product{}).Where("is_active = ?", true), &stats.ActiveProducts},
		{db.Model(&models.Product{}).Where("is_active = ?", false), &stats.InactiveProducts},
		{db.Model(&models.Cart{}).Where("is_active = ?", true), &stats.OpenCarts},
		{db.Model(&models.ContactMessage{}).Where("status = ?", models.ContactStatusNew), &stats.NewContactMessages},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
		}
	}

	var byStatus []struct {
		Status models.OrderStatus
		Count  int64
	}
	if err := db.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders by status: %w", err)
	}
	for _, row := range byStatus {
		stats.OrdersByStatus[row.Status] = row.Count
	}

	var err error
	if stats.TotalRevenue, err = s.revenue(db, time.Time{}, time.Time{}); err != nil {
		return nil, err
	}
	if stats.MonthlyRevenue, err = s.revenue(db, monthStart, time.Time{}); err != nil {
		return nil, err
	}

	var lastMonthOrders int64
	if err := db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", lastMonthStart, monthStart).
		Count(&lastMonthOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to compute dashboard stats: %w", err)
	}
	if lastMonthOrders > 0 {
		stats.OrderGrowth = float64(stats.OrdersThisMonth-lastMonthOrders) / float64(lastMonthOrders) * 100
	}

	return stats, nil
}

func (s *AdminService) revenue(db *gorm.DB, from, to time.Time) (decimal.Decimal, error) {
	query := db.Model(&models.Order{}).Where("status <> ?", models.OrderStatusCancelled)
	if !from.IsZero() {
		query = query.Where("created_at >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("created_at < ?", to)
	}

	var totals []decimal.Decimal
	if err := query.Pluck("total", &totals).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute revenue: %w", err)
	}
	sum := decimal.Zero
	for _, t := range totals {
		sum = sum.Add(t)
	}
	return sum, nil
}

// User Management
func (s *AdminService) GetUsers(ctx context.Context, filter AdminUserFilter) ([]models.User, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.User{})

	if filter.IsStaff != nil {
		query = query.Where("is_staff = ?", *filter.IsStaff)
	}
	if filter.Search != "" {
		searchTerm := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "username", "email", "last_login_at"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

// UpdateUser toggles staff and active flags. Staff cannot demote or disable themselves.
func (s *AdminService) UpdateUser(ctx context.Context, userID, actorID uint, req *UpdateUserRequest) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{}
	if req.IsStaff != nil {
		if userID == actorID && !*req.IsStaff {
			return nil, fmt.Errorf("%w: cannot remove your own staff access", ErrForbidden)
		}
		updates["is_staff"] = *req.IsStaff
		user.IsStaff = *req.IsStaff
	}
	if req.IsActive != nil {
		if userID == actorID && !*req.IsActive {
			return nil, fmt.Errorf("%w: cannot disable your own account", ErrForbidden)
		}
		updates["is_active"] = *req.IsActive
		user.IsActive = *req.IsActive
	}
	if len(updates) == 0 {
		return &user, nil
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// Audit trail
func (s *AdminService) GetAuditLogs(ctx context.Context, filter AdminAuditFilter) ([]models.AuditLog, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.AuditLog{})

	if filter.ResourceType != "" {
		query = query.Where("resource_type = ?", filter.ResourceType)
	}
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	var logs []models.AuditLog
	if err := utils.ApplyPagination(query.Preload("User").Order("created_at DESC, id DESC"), filter.PaginationParams).
		Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, total, nil
}
