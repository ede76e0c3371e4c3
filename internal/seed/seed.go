// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/andomorphia/devconnector/internal/gravatar"
	"github.com/andomorphia/devconnector/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var (
	statuses = []string{
		"Developer", "Junior Developer", "Senior Developer", "Manager",
		"Student or Learning", "Instructor or Teacher", "Intern", "Other",
	}

	skillPool = []string{
		"Go", "JavaScript", "TypeScript", "Python", "Rust", "HTML", "CSS",
		"React", "Vue", "Angular", "Node.js", "PostgreSQL", "Redis", "Docker",
		"Kubernetes", "AWS", "GraphQL", "gRPC", "Terraform", "Linux",
	}

	degrees = []string{
		"B.Sc.", "M.Sc.", "B.Eng.", "Bootcamp Certificate", "Associate Degree",
	}

	fields = []string{
		"Computer Science", "Software Engineering", "Information Systems",
		"Electrical Engineering", "Web Development", "Mathematics",
	}
)

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	profiles, err := createProfiles(db, users)
	if err != nil {
		return fmt.Errorf("failed to create profiles: %w", err)
	}
	log.Printf("%d profiles created", len(profiles))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := createEngagement(db, users, posts); err != nil {
		return fmt.Errorf("failed to create likes and comments: %w", err)
	}
	log.Println("Likes and comments created")

	return nil
}

func clearData(db *gorm.DB) error {
	// Children before parents so FK constraints hold without CASCADE.
	tables := []any{
		&models.Comment{}, &models.Like{}, &models.Post{},
		&models.Experience{}, &models.Education{}, &models.Profile{},
		&models.User{},
	}
	for _, table := range tables {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	// All seeded users share one bcrypt hash; hashing is slow and the
	// password is always "password123".
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		email := fmt.Sprintf("%s%d@%s", strings.ToLower(gofakeit.Username()), i, gofakeit.DomainName())

		user := &models.User{
			Name:     name,
			Email:    email,
			Password: string(hash),
			Avatar:   gravatar.URL(email),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createProfiles(db *gorm.DB, users []*models.User) ([]*models.Profile, error) {
	profiles := make([]*models.Profile, 0, len(users))
	for i, user := range users {
		// Roughly one in five users has registered but not built a profile yet.
		if rand.Intn(5) == 0 {
			continue
		}

		skillCount := 2 + rand.Intn(5)
		skills := make([]string, 0, skillCount)
		seen := map[string]bool{}
		for len(skills) < skillCount {
			s := skillPool[rand.Intn(len(skillPool))]
			if !seen[s] {
				seen[s] = true
				skills = append(skills, s)
			}
		}

		profile := &models.Profile{
			UserID: user.ID,
			Handle: fmt.Sprintf("%s%d", strings.ToLower(gofakeit.Username()), i),
			Status: statuses[rand.Intn(len(statuses))],
			Skills: skills,
			Bio:    gofakeit.Sentence(12),
		}
		if rand.Intn(2) == 0 {
			profile.Company = gofakeit.Company()
			profile.Location = fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr())
		}
		if rand.Intn(3) == 0 {
			profile.Website = gofakeit.URL()
			profile.GithubUsername = strings.ToLower(gofakeit.Username())
			profile.Social.Twitter = "https://twitter.com/" + strings.ToLower(gofakeit.Username())
			profile.Social.Linkedin = "https://linkedin.com/in/" + strings.ToLower(gofakeit.Username())
		}

		for e := 0; e < rand.Intn(3); e++ {
			profile.Experience = append(profile.Experience, models.Experience{
				Title:       gofakeit.JobTitle(),
				Company:     gofakeit.Company(),
				Location:    gofakeit.City(),
				From:        gofakeit.DateRange(time.Now().AddDate(-8, 0, 0), time.Now().AddDate(-1, 0, 0)).Format("2006-01-02"),
				Current:     e == 0,
				Description: gofakeit.Sentence(10),
			})
		}
		for e := 0; e < rand.Intn(2); e++ {
			profile.Education = append(profile.Education, models.Education{
				School:       gofakeit.Company() + " University",
				Degree:       degrees[rand.Intn(len(degrees))],
				FieldOfStudy: fields[rand.Intn(len(fields))],
				From:         gofakeit.DateRange(time.Now().AddDate(-12, 0, 0), time.Now().AddDate(-4, 0, 0)).Format("2006-01-02"),
				Description:  gofakeit.Sentence(8),
			})
		}

		if err := db.Create(profile).Error; err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func createPosts(db *gorm.DB, users []*models.User, count int) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := users[rand.Intn(len(users))]
		post := &models.Post{
			UserID: author.ID,
			Name:   author.Name,
			Avatar: author.Avatar,
			Text:   gofakeit.Paragraph(1, 2, 8, " "),
		}
		// realistic created_at spread over the last 90 days
		post.CreatedAt = time.Now().Add(-time.Duration(rand.Intn(90*24)) * time.Hour)

		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createEngagement(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	for _, post := range posts {
		for _, user := range users {
			if rand.Intn(4) != 0 {
				continue
			}
			like := &models.Like{PostID: post.ID, UserID: user.ID}
			if err := db.Create(like).Error; err != nil {
				return err
			}
		}

		for c := 0; c < rand.Intn(4); c++ {
			commenter := users[rand.Intn(len(users))]
			comment := &models.Comment{
				PostID: post.ID,
				UserID: commenter.ID,
				Name:   commenter.Name,
				Avatar: commenter.Avatar,
				Text:   gofakeit.Sentence(10),
			}
			if err := db.Create(comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
