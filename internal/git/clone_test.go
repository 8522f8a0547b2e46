package git

import (
	"errors"
	"testing"
)

func TestCloneURL(t *testing.T) {
	tests := []struct {
		name    string
		repo    string
		want    string
		wantErr bool
	}{
		{
			name: "owner_and_name",
			repo: "k88hudson/rust-templates",
			want: "git@github.com:k88hudson/rust-templates.git",
		},
		{
			name:    "missing_slash",
			repo:    "rust-templates",
			wantErr: true,
		},
		{
			name:    "empty_owner",
			repo:    "/rust-templates",
			wantErr: true,
		},
		{
			name:    "empty_name",
			repo:    "k88hudson/",
			wantErr: true,
		},
		{
			name:    "extra_segment",
			repo:    "k88hudson/templates/extra",
			wantErr: true,
		},
		{
			name:    "empty",
			repo:    "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CloneURL(tt.repo)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidRepo) {
					t.Fatalf("err = %v, want ErrInvalidRepo", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CloneURL error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CloneURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCloneErrorMessage(t *testing.T) {
	err := &CloneError{
		URL:    "git@github.com:a/b.git",
		Stderr: "Permission denied (publickey).",
		Err:    errors.New("exit status 128"),
	}
	if msg := err.Error(); msg != "git clone git@github.com:a/b.git failed: Permission denied (publickey)." {
		t.Errorf("Error = %q", msg)
	}

	bare := &CloneError{URL: "git@github.com:a/b.git", Err: errors.New("exit status 128")}
	if msg := bare.Error(); msg != "git clone git@github.com:a/b.git failed: exit status 128" {
		t.Errorf("Error = %q", msg)
	}

	wrapped := errors.New("exit status 1")
	e := &CloneError{URL: "u", Err: wrapped}
	if !errors.Is(e, wrapped) {
		t.Error("CloneError does not unwrap its cause")
	}
}
