// internal/infra/ethereum/abi.go
package ethereum

// DiamondABI is the subset of the Aavegotchi diamond ABI the pet sitter
// needs: owner enumeration, gotchi detail and the interact (pet) call.
const DiamondABI = `[
  {
    "name": "tokenIdsOfOwner",
    "type": "function",
    "stateMutability": "view",
    "inputs": [{"name": "_owner", "type": "address"}],
    "outputs": [{"name": "tokenIds_", "type": "uint32[]"}]
  },
  {
    "name": "getAavegotchi",
    "type": "function",
    "stateMutability": "view",
    "inputs": [{"name": "_tokenId", "type": "uint256"}],
    "outputs": [
      {
        "name": "aavegotchiInfo_",
        "type": "tuple",
        "components": [
          {"name": "tokenId", "type": "uint256"},
          {"name": "name", "type": "string"},
          {"name": "owner", "type": "address"},
          {"name": "randomNumber", "type": "uint256"},
          {"name": "status", "type": "uint256"},
          {"name": "numericTraits", "type": "int16[6]"},
          {"name": "modifiedNumericTraits", "type": "int16[6]"},
          {"name": "equippedWearables", "type": "uint16[16]"},
          {"name": "collateral", "type": "address"},
          {"name": "escrow", "type": "address"},
          {"name": "stakedAmount", "type": "uint256"},
          {"name": "minimumStake", "type": "uint256"},
          {"name": "kinship", "type": "uint256"},
          {"name": "lastInteracted", "type": "uint256"},
          {"name": "experience", "type": "uint256"},
          {"name": "toNextLevel", "type": "uint256"},
          {"name": "usedSkillPoints", "type": "uint256"},
          {"name": "level", "type": "uint256"},
          {"name": "hauntId", "type": "uint256"},
          {"name": "baseRarityScore", "type": "uint256"},
          {"name": "modifiedRarityScore", "type": "uint256"},
          {"name": "locked", "type": "bool"}
        ]
      }
    ]
  },
  {
    "name": "interact",
    "type": "function",
    "stateMutability": "nonpayable",
    "inputs": [{"name": "_tokenIds", "type": "uint256[]"}],
    "outputs": []
  }
]`
