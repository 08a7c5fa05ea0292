package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "like", want: Like},
		{in: "save", want: Save},
		{in: "repost", want: Repost},
		{in: "Like", wantErr: true},
		{in: "unlike", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKindFields(t *testing.T) {
	assert.Equal(t, "likedBy", Like.TargetField())
	assert.Equal(t, "likedPosts", Like.UserField())
	assert.Equal(t, "savedBy", Save.TargetField())
	assert.Equal(t, "savedPosts", Save.UserField())
	assert.Equal(t, "repostedBy", Repost.TargetField())
	assert.Equal(t, "repostedPosts", Repost.UserField())
}

func TestKindString(t *testing.T) {
	for _, k := range []Kind{Like, Save, Repost} {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, parsed)
	}
}
