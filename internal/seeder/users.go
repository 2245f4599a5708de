package seeder

import (
	"context"
	"fmt"
)

func (s *Seeder) seedSkills(ctx context.Context, state *runState) (int64, error) {
	for _, name := range skillCatalog {
		id, err := s.insertOne(ctx, "skills", []string{"name"}, name)
		if err != nil {
			return 0, err
		}
		state.skillIDs = append(state.skillIDs, id)
	}
	state.counts["skills"] = int64(len(state.skillIDs))
	return state.counts["skills"], nil
}

func (s *Seeder) seedUsers(ctx context.Context, state *runState) (int64, error) {
	columns := []string{"name", "email", "password", "role"}

	add := func(name, email, plain, role string) error {
		hash, err := s.hasher.Hash(plain)
		if err != nil {
			return err
		}
		id, err := s.insertOne(ctx, "users", columns, name, email, hash, role)
		if err != nil {
			return fmt.Errorf("user %s: %w", email, err)
		}

		state.users = append(state.users, userRecord{id: id, name: name, role: role})
		if role == RoleClient {
			state.clientIDs = append(state.clientIDs, id)
		} else {
			state.freelancerIDs = append(state.freelancerIDs, id)
		}
		return nil
	}

	for _, u := range s.opts.TestUsers {
		if err := add(u.Name, u.Email, u.Password, u.Role); err != nil {
			return 0, err
		}
	}

	generated := []struct {
		role  string
		count int
	}{
		{RoleClient, s.opts.Counts.Clients},
		{RoleFreelancer, s.opts.Counts.Freelancers},
	}
	for _, g := range generated {
		for i := 0; i < g.count; i++ {
			name := s.gen.Name()
			if err := add(name, s.gen.Email(name), s.gen.Password(), g.role); err != nil {
				return 0, err
			}
		}
	}

	state.counts["users"] = int64(len(state.users))
	return state.counts["users"], nil
}

func (s *Seeder) seedProfiles(ctx context.Context, state *runState) (int64, error) {
	w := s.newBatchWriter(ctx, "profiles",
		"user_id", "bio", "location", "experience", "rating", "profile_picture")

	for _, u := range state.users {
		err := w.Add(
			u.id,
			s.gen.Paragraph(3),
			s.gen.Location(),
			s.gen.IntBetween(0, 15),
			s.gen.Money(3, 5),
			s.gen.AvatarURL(),
		)
		if err != nil {
			return 0, err
		}
	}

	n, err := w.Close()
	state.counts["profiles"] = n
	return n, err
}

func (s *Seeder) seedUserSkills(ctx context.Context, state *runState) (int64, error) {
	w := s.newBatchWriter(ctx, "user_skills", "user_id", "skill_id")

	for _, freelancerID := range state.freelancerIDs {
		for _, skillID := range s.gen.SampleIDs(state.skillIDs, s.gen.IntBetween(3, 8)) {
			if err := w.Add(freelancerID, skillID); err != nil {
				return 0, err
			}
		}
	}

	n, err := w.Close()
	state.counts["user_skills"] = n
	return n, err
}
