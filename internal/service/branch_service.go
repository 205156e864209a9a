package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ezakat/internal/model"
	"ezakat/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- DTOs ---

type CreateBranchRequest struct {
	Code     string `json:"code" binding:"required"`
	Name     string `json:"name" binding:"required"`
	District string `json:"district"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

type UpdateBranchRequest struct {
	Name     string `json:"name"`
	District string `json:"district"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	IsActive *bool  `json:"is_active"`
}

type BranchResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	Name      string `json:"name"`
	District  string `json:"district"`
	Address   string `json:"address"`
	Phone     string `json:"phone"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// --- Interface ---

type BranchService interface {
	CreateBranch(ctx context.Context, req CreateBranchRequest, userID string) (BranchResponse, error)
	UpdateBranch(ctx context.Context, id string, req UpdateBranchRequest, userID string) (BranchResponse, error)
	GetBranch(ctx context.Context, id string) (BranchResponse, error)
	ListBranches(ctx context.Context, page, limit int) ([]BranchResponse, int64, error)
}

type branchService struct {
	repo repository.BranchRepository
	db   *gorm.DB
}

func NewBranchService(repo repository.BranchRepository, db *gorm.DB) BranchService {
	return &branchService{repo: repo, db: db}
}

// --- Implementation ---

func (s *branchService) CreateBranch(ctx context.Context, req CreateBranchRequest, userID string) (BranchResponse, error) {
	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return BranchResponse{}, fmt.Errorf("branch code '%s' already exists", req.Code)
	}

	branch := model.Branch{
		Code:     req.Code,
		Name:     req.Name,
		District: req.District,
		Address:  req.Address,
		Phone:    req.Phone,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, &branch); err != nil {
		return BranchResponse{}, fmt.Errorf("failed to create branch: %w", err)
	}

	writeAuditLog(ctx, s.db, userID, model.ActionCreateBranch, branch.ID.String(), branch.Code, req)

	return toBranchResponse(branch), nil
}

func (s *branchService) UpdateBranch(ctx context.Context, id string, req UpdateBranchRequest, userID string) (BranchResponse, error) {
	branchID, err := uuid.Parse(id)
	if err != nil {
		return BranchResponse{}, fmt.Errorf("invalid branch id: %w", err)
	}

	branch, err := s.repo.FindByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BranchResponse{}, errors.New("branch not found")
		}
		return BranchResponse{}, fmt.Errorf("failed to fetch branch: %w", err)
	}

	if req.Name != "" {
		branch.Name = req.Name
	}
	if req.District != "" {
		branch.District = req.District
	}
	if req.Address != "" {
		branch.Address = req.Address
	}
	if req.Phone != "" {
		branch.Phone = req.Phone
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, branch); err != nil {
		return BranchResponse{}, fmt.Errorf("failed to update branch: %w", err)
	}

	writeAuditLog(ctx, s.db, userID, model.ActionUpdateBranch, branch.ID.String(), branch.Code, req)

	return toBranchResponse(*branch), nil
}

func (s *branchService) GetBranch(ctx context.Context, id string) (BranchResponse, error) {
	branchID, err := uuid.Parse(id)
	if err != nil {
		return BranchResponse{}, fmt.Errorf("invalid branch id: %w", err)
	}

	branch, err := s.repo.FindByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BranchResponse{}, errors.New("branch not found")
		}
		return BranchResponse{}, fmt.Errorf("failed to fetch branch: %w", err)
	}

	return toBranchResponse(*branch), nil
}

func (s *branchService) ListBranches(ctx context.Context, page, limit int) ([]BranchResponse, int64, error) {
	branches, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch branches: %w", err)
	}

	res := make([]BranchResponse, 0, len(branches))
	for _, b := range branches {
		res = append(res, toBranchResponse(b))
	}

	return res, total, nil
}

// --- Helpers ---

func toBranchResponse(b model.Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID.String(),
		Code:      b.Code,
		Name:      b.Name,
		District:  b.District,
		Address:   b.Address,
		Phone:     b.Phone,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}
