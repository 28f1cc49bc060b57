package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"

	"base97/dao"
	"base97/models"
	"base97/pkg/log"
	"base97/pkg/response"
	"base97/queue"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const affiliateCodeLen = 9

// codeGenAttempts 撞唯一索引时的重新生成次数上限
const codeGenAttempts = 5

// AffiliateStore dao.AffiliateRequests 的能力切面
type AffiliateStore interface {
	CreatePending(ctx context.Context, userID uint) (*models.AffiliateRequest, error)
	FindById(ctx context.Context, id uint) (*models.AffiliateRequest, error)
	ListWithUsers(ctx context.Context) ([]*models.AffiliateRequest, error)
	FindApprovedByCode(ctx context.Context, code string) (*models.AffiliateRequest, error)
	SetApproved(ctx context.Context, req *models.AffiliateRequest, code string) error
	SetRejected(ctx context.Context, req *models.AffiliateRequest) error
}

// ReviewCounter 推广资格检查只需要评价计数
type ReviewCounter interface {
	CountByUser(ctx context.Context, userID uint) (int64, error)
}

var _ IAffiliateService = (*AffiliateService)(nil)

type IAffiliateService interface {
	CreateRequest(ctx context.Context, userID uint) (*models.AffiliateRequest, error)
	ListRequests(ctx context.Context) ([]*models.AffiliateRequest, error)
	Approve(ctx context.Context, requestID uint) (*models.AffiliateRequest, error)
	Reject(ctx context.Context, requestID uint) (*models.AffiliateRequest, error)
}

type AffiliateService struct {
	Requests AffiliateStore
	Reviews  ReviewCounter
	Users    UserStore
	Queue    queue.Publisher
}

// GenerateAffiliateCode 9 位大写字母数字推广码。
// 随机字节走 base64 后剔除非字母数字字符, 不足 9 位继续取。
func GenerateAffiliateCode() (string, error) {
	var b strings.Builder
	for b.Len() < affiliateCodeLen {
		buf := make([]byte, 6)
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		encoded := base64.StdEncoding.EncodeToString(buf)
		for _, c := range encoded {
			if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
				b.WriteRune(c)
				if b.Len() == affiliateCodeLen {
					break
				}
			}
		}
	}
	return strings.ToUpper(b.String()), nil
}

func (s *AffiliateService) CreateRequest(ctx context.Context, userID uint) (*models.AffiliateRequest, error) {
	// 资格门槛: 至少写过一条评价
	count, err := s.Reviews.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, response.BadRequest("You must submit at least one product review before requesting an affiliate link.")
	}

	req, err := s.Requests.CreatePending(ctx, userID)
	if err != nil {
		if errors.Is(err, dao.ErrPendingExists) {
			return nil, response.BadRequest("You already have a pending request")
		}
		return nil, err
	}
	return req, nil
}

func (s *AffiliateService) ListRequests(ctx context.Context) ([]*models.AffiliateRequest, error) {
	return s.Requests.ListWithUsers(ctx)
}

func (s *AffiliateService) findPending(ctx context.Context, requestID uint) (*models.AffiliateRequest, error) {
	req, err := s.Requests.FindById(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NotFound("Request not found")
		}
		return nil, err
	}
	if !req.IsPending() {
		return nil, response.Conflict("Request is not pending")
	}
	return req, nil
}

func (s *AffiliateService) Approve(ctx context.Context, requestID uint) (*models.AffiliateRequest, error) {
	req, err := s.findPending(ctx, requestID)
	if err != nil {
		return nil, err
	}

	var code string
	for attempt := 0; ; attempt++ {
		code, err = GenerateAffiliateCode()
		if err != nil {
			return nil, err
		}
		err = s.Requests.SetApproved(ctx, req, code)
		if err == nil {
			break
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) && attempt < codeGenAttempts {
			log.L.Warn("affiliate code collision, regenerating", zap.String("code", code))
			continue
		}
		return nil, err
	}
	req.Status = models.AffiliateStatusApproved
	req.AffiliateCode = &code

	if user, err := s.Users.FindById(ctx, req.UserID); err == nil {
		_ = s.Queue.Publish(ctx, queue.KindAffiliateApproved, queue.AffiliateApprovedEvent{
			RequestID: req.ID,
			UserID:    user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Code:      code,
		})
	}

	return req, nil
}

func (s *AffiliateService) Reject(ctx context.Context, requestID uint) (*models.AffiliateRequest, error) {
	req, err := s.findPending(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := s.Requests.SetRejected(ctx, req); err != nil {
		return nil, err
	}
	req.Status = models.AffiliateStatusRejected

	if user, err := s.Users.FindById(ctx, req.UserID); err == nil {
		_ = s.Queue.Publish(ctx, queue.KindAffiliateRejected, queue.AffiliateRejectedEvent{
			RequestID: req.ID,
			UserID:    user.ID,
			Name:      user.Name,
			Email:     user.Email,
		})
	}

	return req, nil
}
