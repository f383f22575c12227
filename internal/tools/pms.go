// Package tools exposes the PMS operations as MCP tools. The handlers only
// translate between the MCP envelope and the service layer; all PMS semantics
// live behind app.PMSService.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"synxis_pms/internal/adapters/observability"
	"synxis_pms/internal/app"
	"synxis_pms/internal/domain"
)

// ToolResponse is the uniform envelope every PMS tool returns, serialized as
// the tool result's text content.
type ToolResponse struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Error     string         `json:"error,omitempty"`
	NextSteps []string       `json:"next_steps,omitempty"`
}

// Register attaches the PMS management tools to the MCP server.
func Register(srv *server.MCPServer, svc *app.PMSService, logger zerolog.Logger) {
	srv.AddTool(mcp.NewTool("get_guest",
		mcp.WithDescription("Get guest information by ID."),
		mcp.WithString("guest_id", mcp.Required(), mcp.Description("Guest identifier")),
	), HandleGetGuest(svc, logger))

	srv.AddTool(mcp.NewTool("get_room",
		mcp.WithDescription("Get room details by ID."),
		mcp.WithString("room_id", mcp.Required(), mcp.Description("Room identifier")),
	), HandleGetRoom(svc, logger))

	srv.AddTool(mcp.NewTool("get_room_status",
		mcp.WithDescription("Get the current housekeeping status of a room."),
		mcp.WithString("room_id", mcp.Required(), mcp.Description("Room identifier")),
	), HandleGetRoomStatus(svc, logger))

	srv.AddTool(mcp.NewTool("list_available_rooms",
		mcp.WithDescription("List rooms currently available for assignment."),
	), HandleListAvailableRooms(svc, logger))

	srv.AddTool(mcp.NewTool("check_in",
		mcp.WithDescription("Check in a guest."),
		mcp.WithString("reservation_id", mcp.Required(), mcp.Description("Reservation identifier")),
		mcp.WithString("room_id", mcp.Required(), mcp.Description("Room to assign")),
	), HandleCheckIn(svc, logger))

	srv.AddTool(mcp.NewTool("check_out",
		mcp.WithDescription("Check out a guest."),
		mcp.WithString("reservation_id", mcp.Required(), mcp.Description("Reservation identifier")),
	), HandleCheckOut(svc, logger))

	srv.AddTool(mcp.NewTool("get_folio",
		mcp.WithDescription("Get the guest folio (billing statement) for a reservation."),
		mcp.WithString("reservation_id", mcp.Required(), mcp.Description("Reservation identifier")),
	), HandleGetFolio(svc, logger))

	logger.Info().Msg("registered 7 PMS management tools")
}

func HandleGetGuest(svc *app.PMSService, log zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		guestID, err := req.RequireString("guest_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		log.Info().Str("guest_id", guestID).Msg("tool: get_guest")

		g, err := svc.GetGuest(ctx, guestID)
		if err != nil {
			observability.ObserveToolCall("get_guest", "error")
			return envelope(ToolResponse{Success: false, Message: "Failed to get guest", Error: err.Error()})
		}
		if g == nil {
			observability.ObserveToolCall("get_guest", "not_found")
			return envelope(ToolResponse{
				Success:   false,
				Message:   fmt.Sprintf("Guest %s not found", guestID),
				NextSteps: []string{"Verify the guest ID is correct"},
			})
		}
		observability.ObserveToolCall("get_guest", "ok")
		return envelope(ToolResponse{
			Success: true,
			Message: fmt.Sprintf("Found guest: %s %s", g.FirstName, g.LastName),
			Data:    map[string]any{"guest": guestData(g)},
			NextSteps: []string{
				"Use check_in to check in the guest",
				"Use get_folio to view billing",
			},
		})
	}
}

func HandleGetRoom(svc *app.PMSService, log zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		roomID, err := req.RequireString("room_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		log.Info().Str("room_id", roomID).Msg("tool: get_room")

		r, err := svc.GetRoom(ctx, roomID)
		if err != nil {
			observability.ObserveToolCall("get_room", "error")
			return envelope(ToolResponse{Success: false, Message: "Failed to get room", Error: err.Error()})
		}
		if r == nil {
			observability.ObserveToolCall("get_room", "not_found")
			return envelope(ToolResponse{Success: false, Message: fmt.Sprintf("Room %s not found", roomID)})
		}
		observability.ObserveToolCall("get_room", "ok")
		return envelope(ToolResponse{
			Success: true,
			Message: fmt.Sprintf("Room %s status: %s", r.RoomNumber, r.Status),
			Data:    map[string]any{"room": roomData(r)},
			NextSteps: []string{
				"Use check_in if room is available",
				"Use check_out if room is occupied",
			},
		})
	}
}

func HandleGetRoomStatus(svc *app.PMSService, log zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		roomID, err := req.RequireString("room_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		log.Info().Str("room_id", roomID).Msg("tool: get_room_status")

		status, err := svc.GetRoomStatus(ctx, roomID)
		if errors.Is(err, domain.ErrNotFound) {
			observability.ObserveToolCall("get_room_status", "not_found")
			return envelope(ToolResponse{Success: false, Message: fmt.Sprintf("Room %s not found", roomID)})
		}
		if err != nil {
			observability.ObserveToolCall("get_room_status", "error")
			return envelope(ToolResponse{Success: false, Message: "Failed to get room status", Error: err.Error()})
		}
		observability.ObserveToolCall("get_room_status", "ok")
		return envelope(ToolResponse{
			Success: true,
			Message: fmt.Sprintf("Room %s status: %s", roomID, status),
			Data:    map[string]any{"room_id": roomID, "status": string(status)},
		})
	}
}

func HandleListAvailableRooms(svc *app.PMSService, log zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		log.Info().Msg("tool: list_available_rooms")

		rooms, err := svc.ListAvailableRooms(ctx)
		if err != nil {
			observability.ObserveToolCall("list_available_rooms", "error")
			return envelope(ToolResponse{Success: false, Message: "Failed to list rooms", Error: err.Error()})
		}
		data := make([]map[string]any, 0, len(rooms))
		for i := range rooms {
			data = append(data, roomData(&rooms[i]))
		}
		observability.ObserveToolCall("list_available_rooms", "ok")
		return envelope(ToolResponse{
			Success:   true,
			Message:   fmt.Sprintf("%d rooms available", len(rooms)),
			Data:      map[string]any{"rooms": data},
			NextSteps: []string{"Use check_in to assign a room"},
		})
	}
}

func HandleCheckIn(svc *app.PMSService, log zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reservationID, err := req.RequireString("reservation_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		roomID, err := req.RequireString("room_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		log.Info().Str("reservation_id", reservationID).Str("room_id", roomID).Msg("tool: check_in")

		res, err := svc.CheckIn(ctx, reservationID, roomID)
		if err != nil {
			observability.ObserveToolCall("check_in", "error")
			return envelope(ToolResponse{Success: false, Message: "Check-in failed", Error: err.Error()})
		}
		observability.ObserveToolCall("check_in", "ok")
		return envelope(ToolResponse{
			Success: true,
			Message: fmt.Sprintf("Checked in %s to room %s", res.GuestName, res.RoomNumber),
			Data: map[string]any{
				"reservation_id":   res.ReservationID,
				"room_id":          res.RoomID,
				"room_number":      res.RoomNumber,
				"check_in_time":    res.CheckInTime.Format(time.RFC3339),
				"key_cards_issued": res.KeyCardsIssued,
			},
			NextSteps: []string{
				"Issue key cards to guest",
				"Inform guest of amenities",
				"Use get_folio to track charges",
			},
		})
	}
}

func HandleCheckOut(svc *app.PMSService, log zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reservationID, err := req.RequireString("reservation_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		log.Info().Str("reservation_id", reservationID).Msg("tool: check_out")

		res, err := svc.CheckOut(ctx, reservationID)
		if err != nil {
			observability.ObserveToolCall("check_out", "error")
			return envelope(ToolResponse{Success: false, Message: "Check-out failed", Error: err.Error()})
		}
		observability.ObserveToolCall("check_out", "ok")
		return envelope(ToolResponse{
			Success: true,
			Message: fmt.Sprintf("Checked out %s from room %s", res.GuestName, res.RoomNumber),
			Data: map[string]any{
				"reservation_id":    res.ReservationID,
				"room_number":       res.RoomNumber,
				"check_out_time":    res.CheckOutTime.Format(time.RFC3339),
				"total_charges":     res.TotalCharges,
				"payments_received": res.PaymentsReceived,
				"balance_due":       res.BalanceDue,
				"invoice_number":    deref(res.InvoiceNumber),
			},
			NextSteps: []string{
				"Process any remaining balance",
				"Return key cards",
				"Mark room for cleaning",
			},
		})
	}
}

func HandleGetFolio(svc *app.PMSService, log zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reservationID, err := req.RequireString("reservation_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		log.Info().Str("reservation_id", reservationID).Msg("tool: get_folio")

		folio, err := svc.GetFolio(ctx, reservationID)
		if err != nil {
			observability.ObserveToolCall("get_folio", "error")
			return envelope(ToolResponse{Success: false, Message: "Failed to get folio", Error: err.Error()})
		}
		charges := make([]map[string]any, 0, len(folio.Charges))
		for _, c := range folio.Charges {
			charges = append(charges, map[string]any{
				"description": c.Description,
				"amount":      c.Amount,
				"category":    c.Category,
			})
		}
		payments := make([]map[string]any, 0, len(folio.Payments))
		for _, p := range folio.Payments {
			payments = append(payments, map[string]any{
				"amount": p.Amount,
				"method": string(p.Method),
			})
		}
		observability.ObserveToolCall("get_folio", "ok")
		return envelope(ToolResponse{
			Success: true,
			Message: fmt.Sprintf("Folio for %s - Balance: $%.2f", folio.GuestName, folio.Balance),
			Data: map[string]any{
				"folio_id":       folio.FolioID,
				"guest_name":     folio.GuestName,
				"room_number":    folio.RoomNumber,
				"charges":        charges,
				"payments":       payments,
				"total_charges":  folio.TotalCharges,
				"total_payments": folio.TotalPayments,
				"balance":        folio.Balance,
			},
			NextSteps: []string{
				"Review charges with guest",
				"Process payment if balance due",
				"Print invoice",
			},
		})
	}
}

// ---- envelope and data shaping ----

func envelope(r ToolResponse) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return mcp.NewToolResultError("failed to encode tool response: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func guestData(g *domain.Guest) map[string]any {
	return map[string]any{
		"guest_id":     g.GuestID,
		"first_name":   g.FirstName,
		"last_name":    g.LastName,
		"email":        deref(g.Email),
		"phone":        deref(g.Phone),
		"loyalty_tier": deref(g.LoyaltyTier),
		"vip_status":   g.VIPStatus,
		"preferences":  g.Preferences,
	}
}

func roomData(r *domain.Room) map[string]any {
	var floor any
	if r.Floor != nil {
		floor = *r.Floor
	}
	return map[string]any{
		"room_id":           r.RoomID,
		"room_number":       r.RoomNumber,
		"room_type":         r.RoomType,
		"room_type_name":    r.RoomTypeName,
		"floor":             floor,
		"status":            string(r.Status),
		"features":          r.Features,
		"max_occupancy":     r.MaxOccupancy,
		"current_occupancy": r.CurrentOccupancy,
	}
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
