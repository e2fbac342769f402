package session

import "sync"

// Store хранит активные сессии в памяти процесса: login -> токен сессии.
// Состояние живет только до перезапуска сервера. Все обращения идут
// через один мьютекс.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewStore создает новое пустое хранилище сессий
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]string),
	}
}

// Set записывает токен сессии для логина
func (s *Store) Set(login, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[login] = token
}

// Delete удаляет сессию логина. Возвращает false, если логин не был залогинен.
func (s *Store) Delete(login string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[login]; !ok {
		return false
	}
	delete(s.sessions, login)
	return true
}

// IsLoggedIn проверяет, есть ли активная сессия для логина
func (s *Store) IsLoggedIn(login string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[login]
	return ok
}

// HasToken проверяет, числится ли токен среди значений таблицы сессий
func (s *Store) HasToken(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.sessions {
		if t == token {
			return true
		}
	}
	return false
}

// LoginByToken находит логин, которому выдан токен. При нескольких
// совпадениях возвращается первое найденное, порядок не определен.
func (s *Store) LoginByToken(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for login, t := range s.sessions {
		if t == token {
			return login, true
		}
	}
	return "", false
}

// Len возвращает количество активных сессий
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
