package descriptor

import "testing"

// ---------------------------------------------------------------------------
// Credential DSN splitting
// ---------------------------------------------------------------------------

func TestSplitDSN(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		user     string
		password string
		connect  string
	}{
		{"full form", "scott/tiger@orclpdb", "scott", "tiger", "orclpdb"},
		{"bare credentials", "scott/tiger", "scott", "tiger", ""},
		{"user with empty password", "scott/", "scott", "", ""},
		{"user only", "scott", "scott", "", ""},
		{"no credentials", "/@orclpdb", "", "", "orclpdb"},
		{"connect string only", "@orclpdb", "", "", "orclpdb"},
		{"password with slash", "scott/ti/ger@db", "scott", "ti/ger", "db"},
		{"easy connect target", "scott/tiger@tcps://db:1522/svc", "scott", "tiger", "tcps://db:1522/svc"},
		{"empty", "", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, password, connect := SplitDSN(tt.input)
			if user != tt.user || password != tt.password || connect != tt.connect {
				t.Errorf("SplitDSN(%q) = (%q, %q, %q), want (%q, %q, %q)",
					tt.input, user, password, connect, tt.user, tt.password, tt.connect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Sub-grammar dispatch
// ---------------------------------------------------------------------------

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"(DESCRIPTION=(HOST=x))", KindDescriptor},
		{"HOST=x", KindDescriptor},
		{"dbhost:1521/svc", KindEasyConnect},
		{"dbhost/svc", KindEasyConnect},
		{"tcps://dbhost", KindEasyConnect},
		{"db1,db2/svc", KindEasyConnect},
		{"dbhost?expire_time=2", KindEasyConnect},
		{"tcps://dbhost.example.com:1522/orclpdb?connect_timeout=5", KindEasyConnect},
		{"myalias", KindBareName},
		{"db.example.com", KindBareName},
	}

	for _, tt := range tests {
		if got := Classify(tt.input); got != tt.want {
			t.Errorf("Classify(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
