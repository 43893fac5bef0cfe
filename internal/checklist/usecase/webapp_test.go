package usecase

import (
	"context"
	"errors"
	"testing"

	"checkbot/internal/checkbox"
	"checkbot/internal/checklist"
	"checkbot/internal/location"
	"checkbot/internal/model"
	"checkbot/internal/permission"
	"checkbot/pkg/deeplink"
)

func (f *fixture) param(t *testing.T, loc location.Location) string {
	t.Helper()
	tok, err := f.codec.Encode(loc)
	if err != nil {
		t.Fatal(err)
	}
	param, err := deeplink.EncodeParams(tok.Parts())
	if err != nil {
		t.Fatal(err)
	}
	return param
}

func TestRead(t *testing.T) {
	ctx := context.Background()
	loc := location.Location{SourceChatID: 7, SourceMessageID: 5, Salt: "abc"}

	t.Run("Returns current lines", func(t *testing.T) {
		f := newFixture(t)
		f.reader.text = "title\n- [x] done"

		out, err := f.uc.Read(ctx, model.NewScope(7), checklist.ReadInput{Location: f.param(t, loc)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []checkbox.Line{{Text: "title"}, {HasCheckBox: true, IsChecked: true, Text: "done"}}
		if len(out.Data.Lines) != 2 || out.Data.Lines[0] != want[0] || out.Data.Lines[1] != want[1] {
			t.Errorf("unexpected lines %+v", out.Data.Lines)
		}
	})

	t.Run("Other users private checklist", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Read(ctx, model.NewScope(8), checklist.ReadInput{Location: f.param(t, loc)})
		if !errors.Is(err, permission.ErrNotEnoughRights) {
			t.Fatalf("expected ErrNotEnoughRights, got %v", err)
		}
	})

	t.Run("Garbage location", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.Read(ctx, model.NewScope(7), checklist.ReadInput{Location: "t_c_7_5_nope"})
		if !errors.Is(err, location.ErrParse) {
			t.Fatalf("expected ErrParse, got %v", err)
		}
	})
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	loc := location.Location{SourceChatID: 7, SourceMessageID: 5, Salt: "abc"}

	t.Run("Publishes supplied lines", func(t *testing.T) {
		f := newFixture(t)
		lines := []checkbox.Line{
			{Text: "heading", IsChecked: true},
			{HasCheckBox: true, Text: "new item"},
		}
		if err := f.uc.Update(ctx, model.NewScope(7), checklist.UpdateInput{Location: f.param(t, loc), Lines: lines}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		edit, ok := f.bot.editFor(7, "")
		if !ok || edit.MessageID != 5 {
			t.Fatalf("expected canonical edit, got %+v", f.bot.edits)
		}
		if f.reader.calls != 0 {
			t.Error("update must not read the old text")
		}
	})

	t.Run("Empty lines", func(t *testing.T) {
		f := newFixture(t)
		err := f.uc.Update(ctx, model.NewScope(7), checklist.UpdateInput{Location: f.param(t, loc)})
		if !errors.Is(err, checklist.ErrEmptyChecklist) {
			t.Fatalf("expected ErrEmptyChecklist, got %v", err)
		}
	})
}

func TestDataFromLines(t *testing.T) {
	cfg := userconfigFor(7, "✔️", "- [  ]")
	data, err := dataFromLines([]checkbox.Line{{Text: "x", IsChecked: true}, {HasCheckBox: true, IsChecked: true, Text: "y"}}, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if data.Lines[0].IsChecked {
		t.Error("plain lines can never be checked")
	}
	if !data.HasCheckBoxes || data.CheckedBoxStyle != "✔️" || data.UncheckedBoxStyle != "- [  ]" {
		t.Errorf("unexpected data %+v", data)
	}
}

func TestCreateFromWebApp(t *testing.T) {
	ctx := context.Background()
	lines := []checkbox.Line{{HasCheckBox: true, Text: "first"}}

	t.Run("Draft location", func(t *testing.T) {
		f := newFixture(t)
		param, err := f.uc.MintDraftLocation(ctx, model.NewScope(7))
		if err != nil {
			t.Fatalf("MintDraftLocation: %v", err)
		}

		out, err := f.uc.CreateFromWebApp(ctx, model.NewScope(7), checklist.UpdateInput{Location: param, Lines: lines})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Location.SourceChatID != 7 || out.Location.SourceMessageID == 0 {
			t.Errorf("unexpected location %+v", out.Location)
		}
		draft, _, _ := f.codec.Decode(deeplink.DecodeParams(param))
		if out.Location.Salt != draft.Salt {
			t.Errorf("expected the draft salt to be kept")
		}
	})

	t.Run("Already sent", func(t *testing.T) {
		f := newFixture(t)
		sent := location.Location{SourceChatID: 7, SourceMessageID: 5, Salt: "abc"}
		_, err := f.uc.CreateFromWebApp(ctx, model.NewScope(7), checklist.UpdateInput{Location: f.param(t, sent), Lines: lines})
		if !errors.Is(err, checklist.ErrAlreadyCreated) {
			t.Fatalf("expected ErrAlreadyCreated, got %v", err)
		}
	})

	t.Run("Draft of another user", func(t *testing.T) {
		f := newFixture(t)
		param, _ := f.uc.MintDraftLocation(ctx, model.NewScope(7))
		_, err := f.uc.CreateFromWebApp(ctx, model.NewScope(8), checklist.UpdateInput{Location: param, Lines: lines})
		if !errors.Is(err, permission.ErrNotEnoughRights) {
			t.Fatalf("expected ErrNotEnoughRights, got %v", err)
		}
	})
}
