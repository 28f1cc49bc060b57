package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"base97/models"
	"base97/pkg/response"
	"base97/queue"

	"gorm.io/gorm"
)

func newAffiliateService(reviews *fakeReviews, users *fakeUsers) (*AffiliateService, *fakeAffiliates, *fakePublisher) {
	affiliates := newFakeAffiliates()
	pub := &fakePublisher{}
	svc := &AffiliateService{Requests: affiliates, Reviews: reviews, Users: users, Queue: pub}
	return svc, affiliates, pub
}

func TestGenerateAffiliateCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code, err := GenerateAffiliateCode()
		if err != nil {
			t.Fatal(err)
		}
		if len(code) != 9 {
			t.Fatalf("code %q length = %d, want 9", code, len(code))
		}
		for _, c := range code {
			if !((c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
				t.Fatalf("code %q has invalid char %q", code, c)
			}
		}
		seen[code] = true
	}
	if len(seen) < 95 {
		t.Errorf("too many duplicate codes: %d unique out of 100", len(seen))
	}
}

func TestCreateRequestNeedsReview(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 1, Name: "a", Email: "a@x.com"})
	svc, _, _ := newAffiliateService(newFakeReviews(), users)

	_, err := svc.CreateRequest(context.Background(), 1)
	var biz *response.BizError
	if !errors.As(err, &biz) || biz.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
	if biz.Msg != "You must submit at least one product review before requesting an affiliate link." {
		t.Errorf("unexpected message: %s", biz.Msg)
	}
}

func TestCreateRequestDuplicatePending(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 1, Name: "a", Email: "a@x.com"})
	reviews := newFakeReviews()
	reviews.countByUser[1] = 2
	svc, _, _ := newAffiliateService(reviews, users)

	if _, err := svc.CreateRequest(context.Background(), 1); err != nil {
		t.Fatal(err)
	}

	_, err := svc.CreateRequest(context.Background(), 1)
	var biz *response.BizError
	if !errors.As(err, &biz) || biz.Msg != "You already have a pending request" {
		t.Fatalf("expected pending-exists error, got %v", err)
	}
}

func TestApprove(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 1, Name: "a", Email: "a@x.com"})
	reviews := newFakeReviews()
	reviews.countByUser[1] = 1
	svc, _, pub := newAffiliateService(reviews, users)

	req, err := svc.CreateRequest(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}

	approved, err := svc.Approve(context.Background(), req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if approved.Status != models.AffiliateStatusApproved {
		t.Errorf("status = %s, want Approved", approved.Status)
	}
	if approved.AffiliateCode == nil || len(*approved.AffiliateCode) != 9 {
		t.Fatal("approved request should carry 9-char code")
	}

	kind, _ := pub.last()
	if kind != queue.KindAffiliateApproved {
		t.Errorf("published kind = %s, want %s", kind, queue.KindAffiliateApproved)
	}

	// 审过的不能再审
	_, err = svc.Approve(context.Background(), req.ID)
	var biz *response.BizError
	if !errors.As(err, &biz) || biz.Code != http.StatusConflict || biz.Msg != "Request is not pending" {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestApproveCodeCollisionRetries(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 1, Name: "a", Email: "a@x.com"})
	reviews := newFakeReviews()
	reviews.countByUser[1] = 1
	svc, affiliates, _ := newAffiliateService(reviews, users)

	req, err := svc.CreateRequest(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}

	affiliates.approveErrs = []error{gorm.ErrDuplicatedKey, gorm.ErrDuplicatedKey}
	approved, err := svc.Approve(context.Background(), req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if approved.AffiliateCode == nil {
		t.Fatal("retry should eventually assign a code")
	}
}

func TestReject(t *testing.T) {
	users := newFakeUsers(&models.User{ID: 1, Name: "a", Email: "a@x.com"})
	reviews := newFakeReviews()
	reviews.countByUser[1] = 1
	svc, _, pub := newAffiliateService(reviews, users)

	req, err := svc.CreateRequest(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}

	rejected, err := svc.Reject(context.Background(), req.ID)
	if err != nil {
		t.Fatal(err)
	}
	if rejected.Status != models.AffiliateStatusRejected {
		t.Errorf("status = %s, want Rejected", rejected.Status)
	}
	if rejected.AffiliateCode != nil {
		t.Error("rejected request should not carry a code")
	}
	if kind, _ := pub.last(); kind != queue.KindAffiliateRejected {
		t.Errorf("published kind = %s", kind)
	}

	// 拒过之后可以重新申请
	if _, err := svc.CreateRequest(context.Background(), 1); err != nil {
		t.Fatalf("re-request after rejection should succeed, got %v", err)
	}
}

func TestApproveMissingRequest(t *testing.T) {
	users := newFakeUsers()
	svc, _, _ := newAffiliateService(newFakeReviews(), users)

	_, err := svc.Approve(context.Background(), 42)
	var biz *response.BizError
	if !errors.As(err, &biz) || biz.Code != http.StatusNotFound || biz.Msg != "Request not found" {
		t.Fatalf("expected 404, got %v", err)
	}
}
