package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/yourname/shammah/internal"
)

type resourceFile struct {
	NextID    int64                `json:"next_id"`
	Resources []*internal.Resource `json:"resources"`
}

type FileStorage struct {
	users             map[string]*internal.User        // token -> User
	profiles          map[string]*internal.UserProfile // userID -> UserProfile
	resources         map[int64]*internal.Resource
	nextResourceID    int64
	mu                sync.RWMutex
	writeMu           sync.Mutex
	usersFile         string
	profilesFile      string
	resourcesFile     string
	saveProfilesChan  chan struct{}
	saveResourcesChan chan struct{}
	shutdownChan      chan struct{}
	workers           sync.WaitGroup
	saveDelay         time.Duration
	logger            internal.Logger
}

func NewFileStorage(usersFile, profilesFile, resourcesFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		users:             make(map[string]*internal.User),
		profiles:          make(map[string]*internal.UserProfile),
		resources:         make(map[int64]*internal.Resource),
		nextResourceID:    1,
		usersFile:         usersFile,
		profilesFile:      profilesFile,
		resourcesFile:     resourcesFile,
		saveProfilesChan:  make(chan struct{}, 1),
		saveResourcesChan: make(chan struct{}, 1),
		shutdownChan:      make(chan struct{}),
		saveDelay:         500 * time.Millisecond,
		logger:            logger,
	}

	if err := s.loadUsers(); err != nil {
		logger.Errorf("storage: failed to load users: %v", err)
		return nil, err
	}
	if err := s.loadProfiles(); err != nil {
		logger.Errorf("storage: failed to load profiles: %v", err)
		return nil, err
	}
	if err := s.loadResources(); err != nil {
		logger.Errorf("storage: failed to load resources: %v", err)
		return nil, err
	}

	s.workers.Add(2)
	go s.saveWorker(s.saveProfilesChan, "profiles", s.saveProfiles)
	go s.saveWorker(s.saveResourcesChan, "resources", s.saveResources)

	return s, nil
}

// decodeFile decodes JSON from path into v. A missing or empty file is not an error.
func decodeFile(path string, v interface{}) error {
	if path == "" {
		return nil
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}
	return nil
}

func (s *FileStorage) loadUsers() error {
	var users []*internal.User
	if err := decodeFile(s.usersFile, &users); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		if u.Role == "" {
			u.Role = internal.RoleUser
		}
		s.users[u.Token] = u
	}
	return nil
}

func (s *FileStorage) loadProfiles() error {
	var profiles []*internal.UserProfile
	if err := decodeFile(s.profilesFile, &profiles); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range profiles {
		s.profiles[p.ID] = p
	}
	return nil
}

func (s *FileStorage) loadResources() error {
	var rf resourceFile
	if err := decodeFile(s.resourcesFile, &rf); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rf.Resources {
		s.resources[r.ID] = r
		if r.ID >= s.nextResourceID {
			s.nextResourceID = r.ID + 1
		}
	}
	if rf.NextID > s.nextResourceID {
		s.nextResourceID = rf.NextID
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveProfiles() error {
	s.mu.RLock()
	profiles := make([]*internal.UserProfile, 0, len(s.profiles))
	for _, p := range s.profiles {
		profiles = append(profiles, p)
	}
	s.mu.RUnlock()
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].ID < profiles[j].ID })

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return atomicWriteFileJSON(s.profilesFile, profiles)
}

func (s *FileStorage) saveResources() error {
	s.mu.RLock()
	rf := resourceFile{NextID: s.nextResourceID, Resources: make([]*internal.Resource, 0, len(s.resources))}
	for _, r := range s.resources {
		rf.Resources = append(rf.Resources, r)
	}
	s.mu.RUnlock()
	sort.Slice(rf.Resources, func(i, j int) bool { return rf.Resources[i].ID < rf.Resources[j].ID })

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return atomicWriteFileJSON(s.resourcesFile, rf)
}

// saveWorker batches save requests so bursts of mutations hit disk once.
func (s *FileStorage) saveWorker(signal <-chan struct{}, name string, save func() error) {
	defer s.workers.Done()
	timer := time.NewTimer(s.saveDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving %s: %v", name, err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func notify(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Close stops the save workers and flushes pending data synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)
	s.workers.Wait()

	if err := s.saveProfiles(); err != nil {
		return err
	}
	return s.saveResources()
}

// --- UserRepository ---
func (s *FileStorage) GetUserByToken(ctx context.Context, token string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[token]
	if !ok {
		return nil, fmt.Errorf("storage: user %w", internal.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

// --- ProfileRepository ---
func (s *FileStorage) GetProfile(ctx context.Context, userID string) (*internal.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("storage: profile %w", internal.ErrNotFound)
	}
	return cloneProfile(p)
}

func (s *FileStorage) CreateProfile(ctx context.Context, profile *internal.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[profile.ID]; ok {
		return fmt.Errorf("storage: profile %w", internal.ErrConflict)
	}
	cp, err := cloneProfile(profile)
	if err != nil {
		return err
	}
	s.profiles[profile.ID] = cp
	notify(s.saveProfilesChan)
	return nil
}

func (s *FileStorage) UpdateProfile(ctx context.Context, userID string, fn func(*internal.UserProfile) error) (*internal.UserProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.profiles[userID]
	if !ok {
		return nil, fmt.Errorf("storage: profile %w", internal.ErrNotFound)
	}
	working, err := cloneProfile(stored)
	if err != nil {
		return nil, err
	}
	if err := fn(working); err != nil {
		return nil, err
	}
	s.profiles[userID] = working
	notify(s.saveProfilesChan)
	return cloneProfile(working)
}

// --- ResourceRepository ---
func (s *FileStorage) AddResource(ctx context.Context, r *internal.Resource) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *r
	cp.ID = s.nextResourceID
	s.nextResourceID++
	s.resources[cp.ID] = &cp
	notify(s.saveResourcesChan)
	return cp.ID, nil
}

func (s *FileStorage) UpdateResource(ctx context.Context, r *internal.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[r.ID]; !ok {
		return fmt.Errorf("storage: resource %w", internal.ErrNotFound)
	}
	cp := *r
	s.resources[r.ID] = &cp
	notify(s.saveResourcesChan)
	return nil
}

func (s *FileStorage) DeleteResource(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.resources[id]; !ok {
		return fmt.Errorf("storage: resource %w", internal.ErrNotFound)
	}
	delete(s.resources, id)
	notify(s.saveResourcesChan)
	return nil
}

func (s *FileStorage) GetResource(ctx context.Context, id int64) (*internal.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resources[id]
	if !ok {
		return nil, fmt.Errorf("storage: resource %w", internal.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

func (s *FileStorage) ListResources(ctx context.Context) ([]internal.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]internal.Resource, 0, len(s.resources))
	for _, r := range s.resources {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// --- Compile-time assertions ---
var _ ProfileRepository = (*FileStorage)(nil)
var _ ResourceRepository = (*FileStorage)(nil)
var _ UserRepository = (*FileStorage)(nil)
