package tools_test

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rs/zerolog"

	"synxis_pms/internal/adapters/synxis"
	"synxis_pms/internal/app"
	"synxis_pms/internal/domain"
	"synxis_pms/internal/tools"
)

func mockService(t *testing.T) *app.PMSService {
	t.Helper()
	return app.NewPMSService(synxis.NewMock(zerolog.Nop()), nil, 0, zerolog.Nop())
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func decodeEnvelope(t *testing.T, result *mcp.CallToolResult) tools.ToolResponse {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("tool result content is %T, want TextContent", result.Content[0])
	}
	var resp tools.ToolResponse
	if err := json.Unmarshal([]byte(text.Text), &resp); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	return resp
}

func TestGetGuest_MockProfile(t *testing.T) {
	h := tools.HandleGetGuest(mockService(t), zerolog.Nop())

	result, err := h(context.Background(), callRequest("get_guest", map[string]any{"guest_id": "G123"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeEnvelope(t, result)
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	guest, ok := resp.Data["guest"].(map[string]any)
	if !ok {
		t.Fatalf("data.guest missing: %v", resp.Data)
	}
	if guest["guest_id"] != "G123" {
		t.Errorf("guest_id = %v, want G123", guest["guest_id"])
	}
	if guest["first_name"] != "John" || guest["last_name"] != "Doe" {
		t.Errorf("unexpected mock profile name: %v %v", guest["first_name"], guest["last_name"])
	}
}

func TestGetGuest_MissingArgument(t *testing.T) {
	h := tools.HandleGetGuest(mockService(t), zerolog.Nop())

	result, err := h(context.Background(), callRequest("get_guest", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected protocol-level error for missing required argument")
	}
}

type absentGuestBackend struct {
	domain.Backend
}

func (absentGuestBackend) GetGuest(context.Context, string) (*domain.Guest, error) {
	return nil, nil
}

func (absentGuestBackend) Close() error { return nil }

func TestGetGuest_NotFoundEnvelope(t *testing.T) {
	svc := app.NewPMSService(absentGuestBackend{}, nil, 0, zerolog.Nop())
	h := tools.HandleGetGuest(svc, zerolog.Nop())

	result, err := h(context.Background(), callRequest("get_guest", map[string]any{"guest_id": "nope"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeEnvelope(t, result)
	if resp.Success {
		t.Fatal("expected success=false for absent guest")
	}
	if resp.Error != "" {
		t.Errorf("absent guest is not an error condition, got %q", resp.Error)
	}
	if len(resp.NextSteps) == 0 {
		t.Error("expected a next_steps hint for absent guest")
	}
}

func TestCheckIn_Envelope(t *testing.T) {
	h := tools.HandleCheckIn(mockService(t), zerolog.Nop())

	result, err := h(context.Background(), callRequest("check_in", map[string]any{
		"reservation_id": "RES42",
		"room_id":        "ROOM7",
	}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeEnvelope(t, result)
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if resp.Data["reservation_id"] != "RES42" || resp.Data["room_id"] != "ROOM7" {
		t.Errorf("identifiers not echoed: %v", resp.Data)
	}
	if cards, _ := resp.Data["key_cards_issued"].(float64); cards != 2 {
		t.Errorf("key_cards_issued = %v, want 2", resp.Data["key_cards_issued"])
	}
	if len(resp.NextSteps) == 0 {
		t.Error("expected next_steps after check-in")
	}
}

func TestGetFolio_Balances(t *testing.T) {
	h := tools.HandleGetFolio(mockService(t), zerolog.Nop())

	result, err := h(context.Background(), callRequest("get_folio", map[string]any{"reservation_id": "RES42"}))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeEnvelope(t, result)
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	charges, _ := resp.Data["total_charges"].(float64)
	payments, _ := resp.Data["total_payments"].(float64)
	balance, _ := resp.Data["balance"].(float64)
	if math.Abs(charges-599.97) > 0.001 {
		t.Errorf("total_charges = %v, want 599.97", charges)
	}
	if math.Abs(payments-200.00) > 0.001 {
		t.Errorf("total_payments = %v, want 200.00", payments)
	}
	if math.Abs(balance-(charges-payments)) > 0.001 {
		t.Errorf("balance = %v, want %v", balance, charges-payments)
	}
}

func TestListAvailableRooms_Envelope(t *testing.T) {
	h := tools.HandleListAvailableRooms(mockService(t), zerolog.Nop())

	result, err := h(context.Background(), callRequest("list_available_rooms", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeEnvelope(t, result)
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	rooms, ok := resp.Data["rooms"].([]any)
	if !ok {
		t.Fatalf("data.rooms missing: %v", resp.Data)
	}
	for _, r := range rooms {
		room := r.(map[string]any)
		if room["status"] != string(domain.RoomStatusAvailable) {
			t.Errorf("listed room %v has status %v", room["room_id"], room["status"])
		}
	}
}
