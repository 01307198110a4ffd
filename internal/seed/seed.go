package seed

import (
	"math/rand"

	"quill/internal/models"

	"gorm.io/gorm"
)

// Demo fills a development database with two known accounts plus a handful
// of posts, comments and likes. Safe to run repeatedly only on a fresh
// database; it does not dedupe.
func Demo(db *gorm.DB) error {
	f := NewFactory(db)

	alice, err := f.CreateUser(func(u *models.User) {
		u.FirstName = "Alice"
		u.LastName = "Walker"
		u.Email = "alice@example.com"
	})
	if err != nil {
		return err
	}

	bob, err := f.CreateUser(func(u *models.User) {
		u.FirstName = "Bob"
		u.LastName = "Harris"
		u.Email = "bob@example.com"
	})
	if err != nil {
		return err
	}

	for _, owner := range []*models.User{alice, bob} {
		for i := 0; i < 3; i++ {
			post, err := f.CreatePost(owner)
			if err != nil {
				return err
			}
			for j := 0; j < rand.Intn(3); j++ {
				if _, err := f.CreateComment(owner, post); err != nil {
					return err
				}
			}
			if err := f.LikePost(post, rand.Intn(5)); err != nil {
				return err
			}
		}
	}
	return nil
}
