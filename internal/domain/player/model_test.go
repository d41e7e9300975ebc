package player

import "testing"

func TestPlayerValidate(t *testing.T) {
	valid := Player{
		ID:      "p1",
		Name:    "Keeper",
		Role:    RoleGoalkeeper,
		Rarity:  RarityRare,
		Overall: 80,
		Tier:    2,
		Stats:   Stats{Pace: 40, Shooting: 20, Passing: 55, Dribbling: 30, Defending: 70, Physical: 75},
	}

	tests := []struct {
		name    string
		mutate  func(*Player)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Player) {}},
		{name: "missing id", mutate: func(p *Player) { p.ID = "" }, wantErr: true},
		{name: "unknown role", mutate: func(p *Player) { p.Role = "ST" }, wantErr: true},
		{name: "unknown rarity", mutate: func(p *Player) { p.Rarity = "mythic" }, wantErr: true},
		{name: "overall above range", mutate: func(p *Player) { p.Overall = 101 }, wantErr: true},
		{name: "zero tier", mutate: func(p *Player) { p.Tier = 0 }, wantErr: true},
		{name: "negative skill", mutate: func(p *Player) { p.Stats.Passing = -1 }, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			err := p.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
