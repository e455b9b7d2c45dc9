package projection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestrict_DropsFieldsOutsideWriteGroup(t *testing.T) {
	in, err := Restrict(CategoryWrite, []byte(`{"id": 99, "name": "Action", "videoGames": []}`))
	require.NoError(t, err)

	assert.True(t, in.Has("name"))
	assert.False(t, in.Has("id"))
	assert.False(t, in.Has("videoGames"))
}

func TestRestrict_RejectsNonObjects(t *testing.T) {
	for _, body := range []string{``, `null`, `[]`, `"name"`, `{"name":`} {
		_, err := Restrict(CategoryWrite, []byte(body))
		assert.ErrorIs(t, err, ErrInvalidPayload, "body %q", body)
	}
}

func TestInput_String(t *testing.T) {
	in := Input{"title": []byte(`"Minecraft"`), "description": []byte(`null`), "country": []byte(`12`)}

	s, err := in.String("title")
	require.NoError(t, err)
	assert.Equal(t, "Minecraft", s)

	s, err = in.String("description")
	require.NoError(t, err)
	assert.Empty(t, s)

	_, err = in.String("country")
	assert.EqualError(t, err, "country must be a string")
}

func TestInput_Date(t *testing.T) {
	tests := []struct {
		raw     string
		want    time.Time
		wantErr bool
	}{
		{raw: `"2011-11-18"`, want: time.Date(2011, 11, 18, 0, 0, 0, 0, time.UTC)},
		{raw: `"2011-11-18T15:04:05+02:00"`, want: time.Date(2011, 11, 18, 0, 0, 0, 0, time.UTC)},
		{raw: `null`, want: time.Time{}},
		{raw: `"18/11/2011"`, wantErr: true},
		{raw: `20111118`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Input{"releaseDate": []byte(tt.raw)}.Date("releaseDate")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestInput_Ref(t *testing.T) {
	tests := []struct {
		raw     string
		want    int64
		wantErr bool
	}{
		{raw: `4`, want: 4},
		{raw: `"4"`, want: 4},
		{raw: `{"id": 4, "name": "ignored"}`, want: 4},
		{raw: `null`, want: 0},
		{raw: `{"name": "Action"}`, wantErr: true},
		{raw: `"four"`, wantErr: true},
		{raw: `4.5`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := Input{"category": []byte(tt.raw)}.Ref("category")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInput_IsNull(t *testing.T) {
	in := Input{"email": []byte(` null `), "password": []byte(`"x"`)}

	assert.True(t, in.IsNull("email"))
	assert.False(t, in.IsNull("password"))
	assert.False(t, in.IsNull("missing"))
}
