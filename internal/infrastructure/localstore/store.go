package localstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
)

// El formato original serializa el precio como número JSON, no como cadena.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Claves con nombre del estado persistido. Mismos nombres que el formato original.
const (
	keyListings = "listedMaterials"
	keySession  = "currentUser"
	keySchema   = "schemaVersion"
)

// Versión del esquema persistido. Se guarda en una clave aparte para no tocar
// el formato de los blobs de datos.
const schemaVersion = 1

// Store guarda blobs JSON bajo claves con nombre sobre un afero.Fs (un archivo
// <clave>.json por clave). Es el equivalente local del almacenamiento del
// navegador: cada clave se lee y se escribe completa. Mantiene una revisión
// en memoria por clave para el guardado check-and-set.
type Store struct {
	fs  afero.Fs
	dir string

	mu   sync.Mutex
	revs map[string]int64
}

// New crea el almacén sobre fs en el directorio dir y registra la versión de
// esquema si aún no existe.
func New(fs afero.Fs, dir string) (*Store, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio del almacén: %w", err)
	}
	s := &Store{fs: fs, dir: dir, revs: make(map[string]int64)}

	exists, err := afero.Exists(fs, s.path(keySchema))
	if err != nil {
		return nil, fmt.Errorf("verificar versión de esquema: %w", err)
	}
	if !exists {
		if err := s.put(keySchema, schemaVersion); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

// load deserializa la clave en v. Devuelve la revisión vigente y si la clave existe.
func (s *Store) load(key string, v interface{}) (rev int64, found bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return s.revs[key], false, nil
		}
		return 0, false, fmt.Errorf("leer clave %q: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return 0, false, fmt.Errorf("deserializar clave %q: %w", key, err)
	}
	return s.revs[key], true, nil
}

// compareAndSave escribe la clave solo si rev sigue siendo la revisión vigente.
// Devuelve false sin escribir cuando la revisión es obsoleta.
func (s *Store) compareAndSave(key string, v interface{}, rev int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rev != s.revs[key] {
		return false, nil
	}
	if err := s.write(key, v); err != nil {
		return false, err
	}
	s.revs[key]++
	return true, nil
}

// put escribe la clave incondicionalmente (último escritor gana).
func (s *Store) put(key string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(key, v); err != nil {
		return err
	}
	s.revs[key]++
	return nil
}

// delete elimina la clave. No es error que la clave no exista.
func (s *Store) delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar clave %q: %w", key, err)
	}
	s.revs[key]++
	return nil
}

// write serializa v y lo escribe de forma atómica: archivo temporal + rename.
func (s *Store) write(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serializar clave %q: %w", key, err)
	}
	tmp := s.path(key) + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("escribir clave %q: %w", key, err)
	}
	if err := s.fs.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("publicar clave %q: %w", key, err)
	}
	return nil
}
