package vehicle

import "testing"

func TestValidateOdometer(t *testing.T) {
	cases := []struct {
		name    string
		current int
		next    int
		wantErr bool
	}{
		{"tăng bình thường", 15000, 15600, false},
		{"giữ nguyên", 15000, 15000, false},
		{"chạy lùi", 15600, 15000, true},
		{"âm", 0, -1, true},
		{"xe mới", 0, 0, false},
	}
	for _, tc := range cases {
		err := ValidateOdometer(tc.current, tc.next)
		if tc.wantErr && err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
	}
}
