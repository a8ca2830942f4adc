package httpserver_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	pressservice "caucus/contexts/content/press-service"
	digitalauditservice "caucus/contexts/endorsement/digital-audit-service"
	auditports "caucus/contexts/endorsement/digital-audit-service/ports"
	vettingservice "caucus/contexts/endorsement/vetting-service"
	vettingerrors "caucus/contexts/endorsement/vetting-service/domain/errors"
	vettingports "caucus/contexts/endorsement/vetting-service/ports"
	membershipservice "caucus/contexts/identity/membership-service"
	"caucus/contexts/identity/membership-service/domain/entities"
	"caucus/internal/platform/httpserver"
)

type testVettingActors struct {
	membership membershipservice.Module
}

func (a testVettingActors) ResolveActor(ctx context.Context, memberID string) (vettingports.ActorContext, error) {
	actor, err := a.membership.Actors.ResolveActor(ctx, memberID)
	if err != nil {
		return vettingports.ActorContext{}, vettingerrors.ErrForbidden
	}
	return vettingports.ActorContext{
		MemberID:          actor.MemberID,
		IsCommitteeMember: actor.IsCommitteeMember,
		IsChair:           actor.IsChair,
		IsBoardMember:     actor.IsBoardMember,
		IsNationalAdmin:   actor.IsNationalAdmin,
	}, nil
}

type testAuditActors struct {
	membership membershipservice.Module
}

func (a testAuditActors) ResolveActor(ctx context.Context, memberID string) (auditports.ActorContext, error) {
	actor, err := a.membership.Actors.ResolveActor(ctx, memberID)
	if err != nil {
		return auditports.ActorContext{}, err
	}
	return auditports.ActorContext{
		MemberID:        actor.MemberID,
		IsChair:         actor.IsChair,
		IsNationalAdmin: actor.IsNationalAdmin,
	}, nil
}

type testAuditVettings struct {
	vetting vettingservice.Module
}

func (d testAuditVettings) GetVetting(ctx context.Context, vettingID string) (auditports.VettingProjection, bool, error) {
	vetting, err := d.vetting.Store.GetVetting(ctx, vettingID)
	if err != nil {
		return auditports.VettingProjection{}, false, nil
	}
	return auditports.VettingProjection{
		VettingID:     vetting.VettingID,
		CandidateName: vetting.CandidateName,
		State:         vetting.State,
		Office:        vetting.Office,
	}, true, nil
}

func newTestServer() (*httpserver.Server, digitalauditservice.Module) {
	now := time.Now().UTC()
	membership := membershipservice.NewInMemoryModule([]entities.Member{
		{
			MemberID:  "chair-1",
			Name:      "Pat Chair",
			Roles:     []entities.Role{entities.RoleCommitteeChair},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			MemberID:  "board-1",
			Name:      "Lee Board",
			Roles:     []entities.Role{entities.RoleBoardMember},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}, nil)
	vetting := vettingservice.NewInMemoryModule(nil, testVettingActors{membership}, nil, nil)
	audit := digitalauditservice.NewInMemoryModule(
		testAuditVettings{vetting},
		testAuditActors{membership},
		nil,
	)
	press := pressservice.NewInMemoryModule(nil)
	return httpserver.New(vetting, audit, press, membership, nil, ""), audit
}

func doRequest(t *testing.T, server *httpserver.Server, method, path, memberID, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if memberID != "" {
		req.Header.Set("X-Member-Id", memberID)
	}
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, req)
	return recorder
}

func TestServerRequiresMemberHeader(t *testing.T) {
	server, _ := newTestServer()

	for _, route := range []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/vettings"},
		{http.MethodPost, "/vettings/vet-1/stage"},
		{http.MethodPost, "/vettings/vet-1/votes"},
		{http.MethodPost, "/vettings/vet-1/votes/finalize"},
		{http.MethodPost, "/vettings/vet-1/audit"},
		{http.MethodPost, "/members/m-1/roles/grant"},
	} {
		recorder := doRequest(t, server, route.method, route.path, "", `{}`)
		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, recorder.Code)
		}
		var payload struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(recorder.Body.Bytes(), &payload); err != nil {
			t.Fatalf("decode error payload failed: %v", err)
		}
		if payload.Code != "missing_member" {
			t.Fatalf("%s %s: expected missing_member code, got %s", route.method, route.path, payload.Code)
		}
	}
}

func TestServerVettingFlowOverHTTP(t *testing.T) {
	server, audit := newTestServer()

	recorder := doRequest(t, server, http.MethodPost, "/vettings", "chair-1", `{
		"candidate_name": "Jordan Avery",
		"office": "State Senate",
		"state": "CO"
	}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("open vetting: expected 201, got %d (%s)", recorder.Code, recorder.Body.String())
	}
	var vetting struct {
		VettingID string `json:"vetting_id"`
		Stage     string `json:"stage"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &vetting); err != nil {
		t.Fatalf("decode vetting failed: %v", err)
	}
	if vetting.Stage != "intake" {
		t.Fatalf("expected intake stage, got %s", vetting.Stage)
	}

	// Backward transition returns the allowed stages.
	recorder = doRequest(t, server, http.MethodPost, "/vettings/"+vetting.VettingID+"/stage", "chair-1", `{
		"target_stage": "intake"
	}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("backward transition: expected 400, got %d", recorder.Code)
	}
	var transition struct {
		Code          string   `json:"code"`
		AllowedStages []string `json:"allowed_stages"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &transition); err != nil {
		t.Fatalf("decode transition error failed: %v", err)
	}
	if transition.Code != "invalid_transition" || len(transition.AllowedStages) == 0 {
		t.Fatalf("unexpected transition error: %+v", transition)
	}

	// Audit trigger accepts with an empty body and responds 202.
	recorder = doRequest(t, server, http.MethodPost, "/vettings/"+vetting.VettingID+"/audit", "chair-1", "")
	if recorder.Code != http.StatusAccepted {
		t.Fatalf("trigger audit: expected 202, got %d (%s)", recorder.Code, recorder.Body.String())
	}
	var accepted struct {
		AuditID string `json:"audit_id"`
		Status  string `json:"status"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &accepted); err != nil {
		t.Fatalf("decode audit accept failed: %v", err)
	}
	if accepted.Status != "running" {
		t.Fatalf("expected running status, got %s", accepted.Status)
	}
	audit.Dispatcher.Wait()

	// A repeat trigger conflicts and names the finished audit.
	recorder = doRequest(t, server, http.MethodPost, "/vettings/"+vetting.VettingID+"/audit", "chair-1", "")
	if recorder.Code != http.StatusConflict {
		t.Fatalf("duplicate audit: expected 409, got %d", recorder.Code)
	}
	var duplicate struct {
		Code    string `json:"code"`
		AuditID string `json:"audit_id"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &duplicate); err != nil {
		t.Fatalf("decode duplicate error failed: %v", err)
	}
	if duplicate.Code != "duplicate_audit" || duplicate.AuditID != accepted.AuditID {
		t.Fatalf("unexpected duplicate payload: %+v", duplicate)
	}

	recorder = doRequest(t, server, http.MethodGet, "/vettings/"+vetting.VettingID+"/audit", "", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("get audit: expected 200, got %d", recorder.Code)
	}

	// Board members are not allowed to open vettings.
	recorder = doRequest(t, server, http.MethodPost, "/vettings", "board-1", `{
		"candidate_name": "Other Person",
		"office": "Mayor"
	}`)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("open vetting by board member: expected 403, got %d", recorder.Code)
	}

	recorder = doRequest(t, server, http.MethodGet, "/posts/missing", "", "")
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("missing post: expected 404, got %d", recorder.Code)
	}
	recorder = doRequest(t, server, http.MethodGet, "/members/chair-1/roles", "", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("get roles: expected 200, got %d", recorder.Code)
	}
}
