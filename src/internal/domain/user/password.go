package user

// PasswordHasher 密碼雜湊介面
//
// 具體演算法由 Infrastructure Layer 提供（argon2id）。
type PasswordHasher interface {
	Hash(plain string) (string, error)
	// Verify 比對密碼；不符合時返回 (false, nil)，雜湊格式錯誤才返回 error
	Verify(plain, encoded string) (bool, error)
}
