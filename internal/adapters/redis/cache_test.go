package redisad_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"

	redisad "synxis_pms/internal/adapters/redis"
	"synxis_pms/internal/domain"
)

func TestCache_RoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	defer c.Close()
	ctx := context.Background()

	want := domain.Guest{GuestID: "G1", FirstName: "John", LastName: "Doe", VIPStatus: true}
	if err := c.Set(ctx, "guest:G1", want, 60); err != nil {
		t.Fatalf("set: %v", err)
	}

	var got domain.Guest
	ok, err := c.Get(ctx, "guest:G1", &got)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.GuestID != "G1" || !got.VIPStatus {
		t.Fatalf("unexpected value: %+v", got)
	}

	if err := c.Del(ctx, "guest:G1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	ok, err = c.Get(ctx, "guest:G1", &got)
	if err != nil || ok {
		t.Fatalf("expected miss after delete: ok=%v err=%v", ok, err)
	}
}

func TestCache_MissIsNotAnError(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	defer c.Close()

	var dst domain.Room
	ok, err := c.Get(context.Background(), "room:nope", &dst)
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if ok {
		t.Fatal("unexpected hit")
	}
}
